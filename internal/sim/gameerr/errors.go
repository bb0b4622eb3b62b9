package gameerr

import (
	"errors"
	"fmt"
)

const (
	ErrBadRequest   = "E_BAD_REQUEST"
	ErrNoPermission = "E_NO_PERMISSION"
	ErrNoResource   = "E_NO_RESOURCE"
	ErrInternal     = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:   {},
	ErrNoPermission: {},
	ErrNoResource:   {},
	ErrInternal:     {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Error is the failure reported by transaction construction and commit.
// Code is machine-readable, Message is meant for the player.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Message
}

func New(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NoPermission(msg string) *Error { return New(ErrNoPermission, msg) }

func NoResource(msg string) *Error { return New(ErrNoResource, msg) }

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}
