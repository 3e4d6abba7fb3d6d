package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnavailable        = errors.New("not available for booking")
	ErrUnchangeableStatus = errors.New("booking status can no longer be changed")
	ErrBadRequest         = errors.New("bad request")
	ErrEmailTaken         = errors.New("email is already in use")
)
