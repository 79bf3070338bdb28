package types

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/constraints"
	"github.com/ghettovoice/sipcodec/internal/errorutil"
)

// Number is an unsigned decimal integer of arbitrary width.
//
// The grammar never narrows numeric fields, so values like a CSeq of 2^32 or more
// survive parsing untouched and range checks are left to the caller.
// A Number may carry a render width, it is then zero padded on output (SIP-date fields, warn-code).
// The zero value is 0.
type Number struct {
	digits string // without leading zeros, empty for 0
	width  int
}

// NewNumber creates a Number from an unsigned integer.
func NewNumber[T constraints.Unsigned](v T) Number {
	return Number{digits: strings.TrimLeft(strconv.FormatUint(uint64(v), 10), "0")}
}

const errNotNumber errorutil.Error = "not a decimal number"

// ParseNumber parses a sequence of decimal digits.
func ParseNumber[T constraints.Byteseq](s T) (Number, error) {
	if len(s) == 0 {
		return Number{}, errtrace.Wrap(errNotNumber)
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return Number{}, errtrace.Wrap(errorutil.NewWrapperError(errNotNumber, "unexpected %q", s[i]))
		}
	}
	return Number{digits: strings.TrimLeft(string(s), "0")}, nil
}

// MustParseNumber is like [ParseNumber] but panics on error.
func MustParseNumber[T constraints.Byteseq](s T) Number {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

// WithWidth returns a copy of n rendered with at least w digits.
func (n Number) WithWidth(w int) Number {
	n.width = w
	return n
}

// Width returns the render width.
func (n Number) Width() int { return n.width }

// Digits returns the digits of the number without padding.
func (n Number) Digits() string {
	if n.digits == "" {
		return "0"
	}
	return n.digits
}

// Uint64 narrows the number to uint64, ok is false when the number does not fit.
func (n Number) Uint64() (v uint64, ok bool) {
	v, err := strconv.ParseUint(n.Digits(), 10, 64)
	return v, err == nil
}

// FitsUint32 reports whether the number is less than 2^32.
func (n Number) FitsUint32() bool {
	v, ok := n.Uint64()
	return ok && v <= 1<<32-1
}

// Big returns the number as [big.Int].
func (n Number) Big() *big.Int {
	v, _ := new(big.Int).SetString(n.Digits(), 10)
	return v
}

// Cmp compares two numbers numerically and returns -1, 0 or +1.
func (n Number) Cmp(other Number) int {
	switch {
	case len(n.digits) < len(other.digits):
		return -1
	case len(n.digits) > len(other.digits):
		return 1
	default:
		return strings.Compare(n.digits, other.digits)
	}
}

// IsZero reports whether the number is 0.
func (n Number) IsZero() bool { return n.digits == "" }

// String returns the number zero padded to its width.
func (n Number) String() string {
	d := n.Digits()
	if len(d) < n.width {
		return strings.Repeat("0", n.width-len(d)) + d
	}
	return d
}

// Format implements fmt.Formatter.
func (n Number) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.String()))
	default:
		fmt.Fprint(f, n.String())
	}
}

// Equal compares numbers numerically, the render width is ignored.
func (n Number) Equal(val any) bool {
	var other Number
	switch v := val.(type) {
	case Number:
		other = v
	case *Number:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return n.digits == other.digits
}

func (n Number) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

func (n *Number) UnmarshalText(text []byte) error {
	v, err := ParseNumber(text)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*n = v.WithWidth(n.width)
	return nil
}
