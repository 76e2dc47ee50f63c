package quote

import "errors"

var (
	ErrCustomerRequired = errors.New("customer is required")
	ErrNoItems          = errors.New("quote has no items")
	ErrIncompleteItem   = errors.New("quote item is incomplete")
	ErrNegativeDiscount = errors.New("discount is negative")
	ErrInvalidStatus    = errors.New("invalid quote status")
)

// ValidationError is a submit rejection that happens before any store call.
// Message is meant for the end user.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }
