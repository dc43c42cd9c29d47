package pets

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("pet not found")
)

// NotFoundError lleva el id que se pidió. errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pet not found with id: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFoundID extrae el id de un NotFoundError (envuelto o no).
func NotFoundID(err error) (int64, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.ID, true
	}
	return 0, false
}
