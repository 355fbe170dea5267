// Package http holds the shared HTTP plumbing: error-returning handlers,
// JSON rendering and graceful serving.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/petegordon/mferoll-sub000/pkg/app/errors"
)

// HandlerFunc is an http handler that reports failure by returning an error
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// HandleError adapts h to a standard http.HandlerFunc, rendering any returned
// error with DefaultErrorHandler.
//
//	r.Get("/bets/{requestId}", http.HandleError(h.getBet))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

type errorResponse struct {
	ErrMsg     string `json:"error"`
	ErrMsgCode int    `json:"code"`
}

// DefaultErrorHandler renders err as {"error": ..., "code": ...}. Only
// ServiceError messages reach the client.
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		WriteJSON(w, svcErr.StatusCode(), &errorResponse{
			ErrMsg:     svcErr.Message,
			ErrMsgCode: svcErr.StatusCode(),
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, &errorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrMsgCode: http.StatusInternalServerError,
	})
}

// WriteJSON writes data as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
