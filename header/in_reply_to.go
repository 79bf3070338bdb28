package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"
)

// InReplyTo represents the In-Reply-To header field.
// The In-Reply-To header field enumerates the Call-IDs that this call references or returns.
type InReplyTo []CallID

func (InReplyTo) CanonicName() Name { return "In-Reply-To" }

func (InReplyTo) CompactName() Name { return "In-Reply-To" }

// RenderTo writes the header to the provided writer.
func (hdr InReplyTo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr InReplyTo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr InReplyTo) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr InReplyTo) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr InReplyTo) Format(f fmt.State, verb rune) {
	type hideMethods InReplyTo
	type InReplyTo hideMethods
	formatHeader(f, verb, hdr, InReplyTo(hdr))
}

// Clone returns a copy of the header.
func (hdr InReplyTo) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr InReplyTo) Equal(val any) bool { return equalList(hdr, val, equalCallID) }

// IsValid checks whether the header is syntactically valid.
func (hdr InReplyTo) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr InReplyTo) Split() []Header { return splitList(hdr) }

func (hdr InReplyTo) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr InReplyTo) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *InReplyTo) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[InReplyTo](data)
	*hdr = h
	return errtrace.Wrap(err)
}

func equalCallID(a, b CallID) bool { return a == b }
