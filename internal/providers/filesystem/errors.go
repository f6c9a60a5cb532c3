package filesystem

import (
	"errors"
	"fmt"
)

// Kind classifies filesystem failures
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidPath
	KindAccessDenied
	KindConfiguration
	KindNotADirectory
	KindNotAFile
	KindInvalidName
	KindAlreadyExists
	KindSourceMissing
	KindDestMissing
	KindTooLarge
	KindUnsupportedType
	KindEmptyQuery
	KindIO
)

var kindCodes = map[Kind]string{
	KindUnknown:         "unknown",
	KindInvalidPath:     "invalid_path",
	KindAccessDenied:    "access_denied",
	KindConfiguration:   "configuration_error",
	KindNotADirectory:   "not_a_directory",
	KindNotAFile:        "not_a_file",
	KindInvalidName:     "invalid_name",
	KindAlreadyExists:   "already_exists",
	KindSourceMissing:   "source_missing",
	KindDestMissing:     "dest_missing",
	KindTooLarge:        "too_large",
	KindUnsupportedType: "unsupported_type",
	KindEmptyQuery:      "empty_query",
	KindIO:              "io_failure",
}

// String returns the snake_case code used on the wire
func (k Kind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindUnknown]
}

// Sentinels for errors.Is comparisons
var (
	ErrInvalidPath     = &Error{Kind: KindInvalidPath}
	ErrAccessDenied    = &Error{Kind: KindAccessDenied}
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrNotADirectory   = &Error{Kind: KindNotADirectory}
	ErrNotAFile        = &Error{Kind: KindNotAFile}
	ErrInvalidName     = &Error{Kind: KindInvalidName}
	ErrAlreadyExists   = &Error{Kind: KindAlreadyExists}
	ErrSourceMissing   = &Error{Kind: KindSourceMissing}
	ErrDestMissing     = &Error{Kind: KindDestMissing}
	ErrTooLarge        = &Error{Kind: KindTooLarge}
	ErrUnsupportedType = &Error{Kind: KindUnsupportedType}
	ErrEmptyQuery      = &Error{Kind: KindEmptyQuery}
	ErrIO              = &Error{Kind: KindIO}
)

// Error is a typed filesystem failure
type Error struct {
	Kind    Kind
	Op      string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind so sentinels compare equal to any error of that kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Path == "" && t.Err == nil
}

// KindOf extracts the kind of err, or KindUnknown
func KindOf(err error) Kind {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op, path, message string) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Message: message}
}

func wrapIO(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Message: "io failure", Err: err}
}
