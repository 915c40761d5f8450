package actions

import "context"

// ActionHandler runs and validates the code of one action type
type ActionHandler interface {
	// Execute runs the code and returns its output
	Execute(ctx context.Context, code string) (string, error)

	// Validate checks the code without running it
	Validate(code string) error

	// IsSupported reports whether the handler works on this platform
	IsSupported() bool
}
