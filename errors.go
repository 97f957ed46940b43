package courtboard

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("courtboard: not found")

// ErrInvalidGesture is returned by the stroke primitives when no stroke is
// open. Controllers absorb it; host pointer ordering is not guaranteed.
var ErrInvalidGesture = errors.New("courtboard: no gesture in progress")

// NotFoundError reports an unknown catalog, scenario or entity.
type NotFoundError struct {
	Kind string // "catalog", "scenario" or "entity"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("courtboard: %s %q not found", e.Kind, e.Name)
}

// Is makes errors.Is(err, ErrNotFound) hold for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExportError reports a failed image export. It never ends the session.
type ExportError struct {
	Op  string // "capture", "encode" or "write"
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("courtboard: export %s: %v", e.Op, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
