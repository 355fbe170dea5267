// Package app defines the runtime contract shared by the cmd/* entrypoints.
package app

// Runner is a runnable application process.
type Runner interface {
	Run() error
}
