package service

import "errors"

// ErrInvalidInput marks errors caused by the caller's data. Handlers map it
// to 400; every other error is a server fault.
var ErrInvalidInput = errors.New("invalid input")
