package reconcile

import (
	"errors"
	"fmt"
)

// Kind classifies a failed run. The set is closed: every error returned by
// Reconcile, and by the staging and store layers feeding it, carries one.
type Kind int

const (
	// KindInputNotFound means the source file or object does not exist.
	KindInputNotFound Kind = iota + 1
	// KindParse means a row could not be decoded.
	KindParse
	// KindConstraintViolation means the store rejected an insert.
	KindConstraintViolation
	// KindConnectivity means the store or the input source could not be reached.
	KindConnectivity
)

// Sentinels for errors.Is matching against a Kind.
var (
	ErrInputNotFound       = errors.New("input not found")
	ErrParse               = errors.New("parse error")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrConnectivity        = errors.New("connectivity error")
)

// String returns the snake_case name used in logs and HTTP responses.
func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input_not_found"
	case KindParse:
		return "parse_error"
	case KindConstraintViolation:
		return "constraint_violation"
	case KindConnectivity:
		return "connectivity_error"
	default:
		return "unclassified"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInputNotFound:
		return ErrInputNotFound
	case KindParse:
		return ErrParse
	case KindConstraintViolation:
		return ErrConstraintViolation
	case KindConnectivity:
		return ErrConnectivity
	default:
		return nil
	}
}

// Error is a classified failure.
type Error struct {
	// Kind is the error class.
	Kind Kind
	// Op names the operation that failed (e.g. "insert author").
	Op string
	// Line is the 1-based input line, or 0 when not tied to a row.
	Line int
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError builds a classified error. If err is already classified it is
// returned unchanged so the innermost classification wins.
func NewError(kind Kind, op string, err error) error {
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// ParseErrorf builds a KindParse error for the given input line.
func ParseErrorf(line int, format string, args ...any) error {
	return &Error{Kind: KindParse, Line: line, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind carried by err, or zero when err is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
