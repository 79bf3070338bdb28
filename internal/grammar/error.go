package grammar

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError describes the position where the input stops matching the grammar.
// Line and Column are 1-based, Column counts octets.
type SyntaxError struct {
	Line     int
	Column   int
	Offset   int
	Expected []string
	Found    string
	Input    []byte
	// Folded marks the input as already LWS folded.
	Folded bool
	Err    error
}

func newSyntaxError(src []byte, pos int, exp []string, err error) *SyntaxError {
	pos = min(pos, len(src))
	line := 1 + bytes.Count(src[:pos], []byte("\n"))
	col := pos + 1
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		col = pos - i
	}
	found := "end of input"
	if pos < len(src) {
		found = strconv.QuoteRune(rune(src[pos]))
	}
	return &SyntaxError{
		Line:     line,
		Column:   col,
		Offset:   pos,
		Expected: append([]string(nil), exp...),
		Found:    found,
		Input:    src,
		Err:      err,
	}
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	if len(e.Expected) > 0 {
		sb.WriteString("expected ")
		for i, exp := range e.Expected {
			switch {
			case i == 0:
			case i == len(e.Expected)-1:
				sb.WriteString(" or ")
			default:
				sb.WriteString(", ")
			}
			sb.WriteString(exp)
		}
		sb.WriteString(" but ")
	} else if e.Err != nil {
		sb.WriteString(e.Err.Error())
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s found at line %d column %d of", e.Found, e.Line, e.Column)
	if e.Folded {
		sb.WriteString(" (LWS folded)")
	}
	sb.WriteString(":\n\n<< EOM\n")
	sb.Write(e.Input)
	sb.WriteString("EOM")
	return sb.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (*SyntaxError) Grammar() bool { return true }
