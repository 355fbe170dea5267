// Package errors maps service failures onto HTTP responses
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a service error
type Category int

const (
	// CategoryGeneralError the service failed in an unexpected way
	CategoryGeneralError Category = iota
	// CategoryDataError the client sent invalid parameters
	CategoryDataError
	// CategoryResourceNotFound the requested bet or record does not exist
	CategoryResourceNotFound
	// CategoryDependencyFailure the database or cache returned an error
	CategoryDependencyFailure
	// CategoryRecovering the service is not ready yet but is expected to recover
	CategoryRecovering
)

func (c Category) String() string {
	switch c {
	case CategoryDataError:
		return "CategoryDataError"
	case CategoryResourceNotFound:
		return "CategoryResourceNotFound"
	case CategoryDependencyFailure:
		return "CategoryDependencyFailure"
	case CategoryRecovering:
		return "CategoryRecovering"
	default:
		return "CategoryGeneralError"
	}
}

// ServiceError carries the message shown to the client and the underlying
// cause, which is only logged.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	case CategoryRecovering:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is a ServiceError of category cat
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

func newError(cat Category, err error, message string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error"
func GeneralError(err error) error {
	return newError(CategoryGeneralError, err, "Internal Server Error")
}

// BadRequestError returns a 400 with message
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message)
}

// ResourceNotFoundError returns a 404 with message
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message)
}

// DependencyError returns a 502 with message
func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message)
}

// UnavailableError returns a 503 with message
func UnavailableError(err error, message string) error {
	return newError(CategoryRecovering, err, message)
}
