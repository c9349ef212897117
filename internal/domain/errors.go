package domain

import "errors"

var (
	ErrInvalidSyntax   = errors.New("invalid command syntax")
	ErrRequestFailed   = errors.New("request failed")
	ErrDispatchBusy    = errors.New("dispatch already in progress")
	ErrSessionInactive = errors.New("session is not active")
)
