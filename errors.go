package sipcodec

import (
	"fmt"

	"github.com/ghettovoice/sipcodec/internal/errorutil"
	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// Error is a sentinel error of the codec.
type Error = errorutil.Error

const (
	// ErrMultipleValues is returned when a singular header appears more than once.
	ErrMultipleValues Error = "multiple header values"
	// ErrInvalidMessage is matched by every [*ParsedError].
	ErrInvalidMessage Error = "invalid message"
	// ErrUnknownRule is returned for a start rule the grammar does not have.
	ErrUnknownRule = grammar.ErrUnknownRule
	// ErrEmptyInput is matched by the syntax error of an empty input.
	ErrEmptyInput = grammar.ErrEmptyInput
)

// SyntaxError is returned when the input does not match the grammar.
// It carries the 1-based line and column of the furthest position the parser has reached
// and the input as it was seen by the grammar, that is after LWS folding.
type SyntaxError = grammar.SyntaxError

// ParsedError is returned when a message matches the grammar but violates RFC 3261.
// StatusCode and ReasonPhrase are suitable for a response to the message,
// Parsed holds the message as far as it was built.
type ParsedError struct {
	StatusCode   uint
	ReasonPhrase string
	Parsed       Message
	// Err is the cause, if any.
	Err error
}

func newParsedError(msg Message, code uint, reason string, cause error) *ParsedError {
	return &ParsedError{StatusCode: code, ReasonPhrase: reason, Parsed: msg, Err: cause}
}

func (e *ParsedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.ReasonPhrase)
}

func (e *ParsedError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{ErrInvalidMessage}
	}
	return []error{ErrInvalidMessage, e.Err}
}

func (*ParsedError) Grammar() bool { return true }

// IsGrammarError reports whether err was produced by the grammar or the validator,
// for example a [*SyntaxError] or a [*ParsedError].
func IsGrammarError(err error) bool { return errorutil.IsGrammarErr(err) }
