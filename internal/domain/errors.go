package domain

import "errors"

// Kind classifies a domain failure; the HTTP layer maps each kind to a status
// exactly once, so services never touch status codes.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindDuplicate
	KindNotFound
	KindInvalidCredentials
	KindInvalidToken
)

// Error carries a kind plus a client-safe message. Fields holds per-field
// validation messages; Err keeps the internal cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "domain error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// InvalidCredentials is deliberately identical for unknown email, wrong
// password and non-active accounts, so callers cannot enumerate accounts.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

func InvalidToken(msg string) *Error {
	return &Error{Kind: KindInvalidToken, Message: msg}
}

func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// KindOf extracts the kind; anything that is not a *Error counts as unexpected.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
