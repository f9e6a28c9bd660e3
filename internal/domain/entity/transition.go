package entity

import "fmt"

// TransitionError is returned when a status change is not in the allowed set.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}
