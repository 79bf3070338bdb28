package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Authorization represents the Authorization header field.
// The Authorization header field contains authentication credentials of a UA.
type Authorization []Credentials

func (Authorization) CanonicName() Name { return "Authorization" }

func (Authorization) CompactName() Name { return "Authorization" }

// RenderTo writes the header to the provided writer, one line per value.
func (hdr Authorization) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderLinesTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Authorization) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Authorization) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Authorization) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Authorization) Format(f fmt.State, verb rune) {
	type hideMethods Authorization
	type Authorization hideMethods
	formatHeader(f, verb, hdr, Authorization(hdr))
}

// Clone returns a copy of the header.
func (hdr Authorization) Clone() Header { return cloneList(hdr, cloneCredentials) }

// Equal compares this header with another for equality.
func (hdr Authorization) Equal(val any) bool { return equalList(hdr, val, equalCredentials) }

// IsValid checks whether the header is syntactically valid.
func (hdr Authorization) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr Authorization) Split() []Header { return splitList(hdr) }

func (hdr Authorization) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Authorization) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Authorization) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Authorization](data)
	*hdr = h
	return errtrace.Wrap(err)
}
