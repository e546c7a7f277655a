package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decoding errors. Every failure aborts the whole decode call; callers
// test for a kind with errors.Is.
var (
	ErrInvalidVarint      = errors.New("invalid varint")
	ErrInvalidWireType    = errors.New("invalid wire type")
	ErrInvalidLength      = errors.New("invalid length")
	ErrUnexpectedWireType = errors.New("unexpected wire type")
	ErrInvalidString      = errors.New("invalid string (not UTF-8)")
	ErrTruncated          = errors.New("field payload exceeds remaining input")
	ErrMaxDepth           = errors.New("exceeded maximum message nesting depth")

	// ErrUnknownField is returned by sinks for field numbers they do not handle
	ErrUnknownField = errors.New("unknown field number")
)

// FieldError represents a sink error together with the path of field
// numbers that led to it, outermost first.
type FieldError struct {
	FieldPath []FieldNumber // e.g., [3, 1] for field 1 of the message in field 3
	Err       error         // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	parts := make([]string, len(e.FieldPath))
	for i, n := range e.FieldPath {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return fmt.Sprintf("error at field path %s: %v", strings.Join(parts, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

// wrapWithField prefixes the field path of err with num. A FieldError
// anywhere in the chain is merged into one path and keeps its cause; context
// a sink wrapped around it is dropped.
func wrapWithField(err error, num FieldNumber) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{
			FieldPath: append([]FieldNumber{num}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []FieldNumber{num},
		Err:       err,
	}
}
