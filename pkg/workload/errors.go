package workload

import (
	"fmt"
)

// ErrorKind identifies a class of workload error
type ErrorKind string

const (
	KindDocumentNotFound   ErrorKind = "DocumentNotFound"
	KindDocumentUnreadable ErrorKind = "DocumentUnreadable"
	KindMalformedDocument  ErrorKind = "MalformedDocument"
	KindInvalidIPAddress   ErrorKind = "InvalidIpAddress"
	KindOutsidePortRange   ErrorKind = "OutsidePortRange"
	KindInvalidPortFormat  ErrorKind = "InvalidPortFormat"
)

// Sentinels for errors.Is. Any *Error matches the sentinel of its kind.
var (
	ErrDocumentNotFound   = &Error{Kind: KindDocumentNotFound}
	ErrDocumentUnreadable = &Error{Kind: KindDocumentUnreadable}
	ErrMalformedDocument  = &Error{Kind: KindMalformedDocument}
	ErrInvalidIPAddress   = &Error{Kind: KindInvalidIPAddress}
	ErrOutsidePortRange   = &Error{Kind: KindOutsidePortRange}
	ErrInvalidPortFormat  = &Error{Kind: KindInvalidPortFormat}
)

// Error is the single error type returned by this package.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind ErrorKind

	// Path of the document (DocumentNotFound, DocumentUnreadable)
	Path string
	// Detail from the decoder (MalformedDocument)
	Detail string
	// Literal is the rejected address key (InvalidIpAddress) or
	// the rejected port spec (InvalidPortFormat)
	Literal string
	// Port is the offending value (OutsidePortRange)
	Port uint64

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDocumentNotFound:
		return fmt.Sprintf("file `%s` not found", e.Path)
	case KindDocumentUnreadable:
		if e.Path == "" {
			return "data could not be read from file"
		}
		return fmt.Sprintf("data could not be read from file %s", e.Path)
	case KindMalformedDocument:
		if e.Detail == "" {
			return "malformed document"
		}
		return fmt.Sprintf("malformed document: %s", e.Detail)
	case KindInvalidIPAddress:
		return fmt.Sprintf("the ip address `%s` is invalid", e.Literal)
	case KindOutsidePortRange:
		return fmt.Sprintf("the port `%d` is outside of the allowed port range", e.Port)
	case KindInvalidPortFormat:
		return fmt.Sprintf("the port `%s` is not a valid port or port range", e.Literal)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func malformed(err error) *Error {
	return &Error{Kind: KindMalformedDocument, Detail: err.Error(), Err: err}
}

func invalidIPAddress(literal string) *Error {
	return &Error{Kind: KindInvalidIPAddress, Literal: literal}
}

func outsidePortRange(port uint64) *Error {
	return &Error{Kind: KindOutsidePortRange, Port: port}
}

func invalidPortFormat(spec string, err error) *Error {
	return &Error{Kind: KindInvalidPortFormat, Literal: spec, Err: err}
}
