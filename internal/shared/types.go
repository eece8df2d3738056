package shared

import "errors"

// ErrInputClosed is returned by prompts when the operator's input stream ends
// before a value was accepted.
var ErrInputClosed = errors.New("input closed before a value was entered")
