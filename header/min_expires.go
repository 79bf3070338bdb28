package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// MinExpires represents the Min-Expires header field.
// The Min-Expires header field conveys the minimum refresh interval supported for soft-state elements managed by that server.
type MinExpires Number

// CanonicName returns the canonical name of the header.
func (MinExpires) CanonicName() Name { return "Min-Expires" }

// CompactName returns the compact name of the header.
func (MinExpires) CompactName() Name { return "Min-Expires" }

// RenderTo writes the header to the provided writer.
func (hdr MinExpires) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr MinExpires) Render(opts *RenderOptions) string { return renderHeader(hdr, opts) }

// RenderValue returns the header value without the name prefix.
func (hdr MinExpires) RenderValue() string { return Number(hdr).String() }

func (hdr MinExpires) String() string { return hdr.RenderValue() }

// Value returns the header value as a [Number].
func (hdr MinExpires) Value() Number { return Number(hdr) }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr MinExpires) Format(f fmt.State, verb rune) {
	formatHeader(f, verb, hdr, Number(hdr))
}

// Clone returns a copy of the header.
func (hdr MinExpires) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr MinExpires) Equal(val any) bool {
	switch v := val.(type) {
	case MinExpires:
		return Number(hdr).Equal(Number(v))
	case *MinExpires:
		return v != nil && Number(hdr).Equal(Number(*v))
	default:
		return false
	}
}

// IsValid checks whether the header is syntactically valid.
func (hdr MinExpires) IsValid() bool { return true }

func (hdr MinExpires) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *MinExpires) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[MinExpires](data)
	*hdr = h
	return errtrace.Wrap(err)
}
