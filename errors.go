package ssz

import (
	"errors"
	"fmt"
)

// Code names one of the canonical parse-failure reasons a root
// computation can abort with. These are the only tags a caller should
// need to switch on; everything else is an engine bug.
type Code string

const (
	CodeNonCanonical    Code = "NonCanonical"
	CodeBadOffset       Code = "BadOffset"
	CodeBitlistPadding  Code = "BitlistPadding"
	CodeLengthOverflow  Code = "LengthOverflow"
	CodeMalformedHeader Code = "MalformedHeader"
	CodeUnexpectedEOF   Code = "UnexpectedEOF"
	CodeUnsupportedType Code = "UnsupportedType"
	CodeDepth           Code = "Depth"
)

// sentinels let callers use errors.Is(err, ssz.ErrBadOffset) without
// unwrapping a *Error by hand.
var (
	ErrNonCanonical    = errors.New(string(CodeNonCanonical))
	ErrBadOffset       = errors.New(string(CodeBadOffset))
	ErrBitlistPadding  = errors.New(string(CodeBitlistPadding))
	ErrLengthOverflow  = errors.New(string(CodeLengthOverflow))
	ErrMalformedHeader = errors.New(string(CodeMalformedHeader))
	ErrUnexpectedEOF   = errors.New(string(CodeUnexpectedEOF))
	ErrUnsupportedType = errors.New(string(CodeUnsupportedType))
	ErrDepth           = errors.New(string(CodeDepth))
)

var sentinelByCode = map[Code]error{
	CodeNonCanonical:    ErrNonCanonical,
	CodeBadOffset:       ErrBadOffset,
	CodeBitlistPadding:  ErrBitlistPadding,
	CodeLengthOverflow:  ErrLengthOverflow,
	CodeMalformedHeader: ErrMalformedHeader,
	CodeUnexpectedEOF:   ErrUnexpectedEOF,
	CodeUnsupportedType: ErrUnsupportedType,
	CodeDepth:           ErrDepth,
}

// Error is a failed root computation: the caller gave bytes inconsistent
// with the descriptor, an invalid descriptor (CodeUnsupportedType), or a
// descriptor nested past the recursion budget (CodeDepth). It always
// carries one of the Code tags above and never a partial digest.
type Error struct {
	Code Code
	Msg  string
}

// NewError builds a tagged parse error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("ssz: %s: %s", e.Code, e.Msg)
}

// Unwrap lets errors.Is(err, ssz.ErrBadOffset) match regardless of the
// message text, the same way the teacher's errIndexOutOfBounds unwraps
// to a package-level sentinel.
func (e *Error) Unwrap() error {
	return sentinelByCode[e.Code]
}
