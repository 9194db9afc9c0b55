package mutate

import (
	"errors"
	"fmt"
)

var ErrEmptyName = errors.New("name is empty")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// CaptureStateError reports an invalid quick-capture transition.
type CaptureStateError struct {
	ID   string
	From string
	Op   string
}

func (e CaptureStateError) Error() string {
	return fmt.Sprintf("capture %s: cannot %s from state %q", e.ID, e.Op, e.From)
}
