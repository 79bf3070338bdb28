package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// MaxForwards represents the Max-Forwards header field.
// The Max-Forwards header field limits the number of proxies or gateways that can forward the request.
type MaxForwards Number

// CanonicName returns the canonical name of the header.
func (MaxForwards) CanonicName() Name { return "Max-Forwards" }

// CompactName returns the compact name of the header.
func (MaxForwards) CompactName() Name { return "Max-Forwards" }

// RenderTo writes the header to the provided writer.
func (hdr MaxForwards) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr MaxForwards) Render(opts *RenderOptions) string { return renderHeader(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr MaxForwards) RenderValue() string { return Number(hdr).String() }

func (hdr MaxForwards) String() string { return hdr.RenderValue() }

// Value returns the header value as a [Number].
func (hdr MaxForwards) Value() Number { return Number(hdr) }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr MaxForwards) Format(f fmt.State, verb rune) {
	formatHeader(f, verb, hdr, Number(hdr))
}

// Clone returns a copy of the header.
func (hdr MaxForwards) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr MaxForwards) Equal(val any) bool {
	switch v := val.(type) {
	case MaxForwards:
		return Number(hdr).Equal(Number(v))
	case *MaxForwards:
		return v != nil && Number(hdr).Equal(Number(*v))
	default:
		return false
	}
}

// IsValid checks whether the header is syntactically valid.
func (hdr MaxForwards) IsValid() bool { return true }

func (hdr MaxForwards) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *MaxForwards) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[MaxForwards](data)
	*hdr = h
	return errtrace.Wrap(err)
}
