package overlay

import "errors"

var (
	// ErrInvalidSurface is returned by Attach when given a nil container.
	ErrInvalidSurface = errors.New("invalid surface")

	// ErrInvalidState marks a call made from a state that does not permit
	// it. The fluent API never returns it; such calls resolve to no-ops
	// carrying this sentinel in their diagnostic.
	ErrInvalidState = errors.New("invalid state")
)
