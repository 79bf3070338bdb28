package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Accept represents the Accept header field.
// The Accept header field lists the media types acceptable for the response.
type Accept []MIMERange

func (Accept) CanonicName() Name { return "Accept" }

func (Accept) CompactName() Name { return "Accept" }

// RenderTo writes the header to the provided writer.
func (hdr Accept) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Accept) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Accept) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Accept) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Accept) Format(f fmt.State, verb rune) {
	type hideMethods Accept
	type Accept hideMethods
	formatHeader(f, verb, hdr, Accept(hdr))
}

// Clone returns a copy of the header.
func (hdr Accept) Clone() Header { return cloneList(hdr, cloneMIMERange) }

// Equal compares this header with another for equality.
func (hdr Accept) Equal(val any) bool { return equalList(hdr, val, equalMIMERange) }

// IsValid checks whether the header is syntactically valid.
func (hdr Accept) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return hdr != nil
}

func (hdr Accept) Split() []Header { return splitList(hdr) }

func (hdr Accept) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Accept) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Accept) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Accept](data)
	*hdr = h
	return errtrace.Wrap(err)
}
