package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// UserAgent represents the User-Agent header field.
// The User-Agent header field contains information about the UAC originating the request.
// Values are separated by SP, repeated headers combine into a single line.
type UserAgent []Product

func (UserAgent) CanonicName() Name { return "User-Agent" }

func (UserAgent) CompactName() Name { return "User-Agent" }

// RenderTo writes the header to the provided writer.
func (hdr UserAgent) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr UserAgent) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr UserAgent) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr UserAgent) RenderValue() string { return joinList(hdr, " ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr UserAgent) Format(f fmt.State, verb rune) {
	type hideMethods UserAgent
	type UserAgent hideMethods
	formatHeader(f, verb, hdr, UserAgent(hdr))
}

// Clone returns a copy of the header.
func (hdr UserAgent) Clone() Header { return cloneList(hdr, cloneProduct) }

// Equal compares this header with another for equality.
func (hdr UserAgent) Equal(val any) bool { return equalList(hdr, val, equalProduct) }

// IsValid checks whether the header is syntactically valid.
func (hdr UserAgent) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr UserAgent) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr UserAgent) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *UserAgent) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[UserAgent](data)
	*hdr = h
	return errtrace.Wrap(err)
}
