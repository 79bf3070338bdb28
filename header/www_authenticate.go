package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// WWWAuthenticate represents the WWW-Authenticate header field.
// The WWW-Authenticate header field value contains an authentication challenge.
type WWWAuthenticate []Challenge

func (WWWAuthenticate) CanonicName() Name { return "WWW-Authenticate" }

func (WWWAuthenticate) CompactName() Name { return "WWW-Authenticate" }

// RenderTo writes the header to the provided writer, one line per value.
func (hdr WWWAuthenticate) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderLinesTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr WWWAuthenticate) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr WWWAuthenticate) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr WWWAuthenticate) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr WWWAuthenticate) Format(f fmt.State, verb rune) {
	type hideMethods WWWAuthenticate
	type WWWAuthenticate hideMethods
	formatHeader(f, verb, hdr, WWWAuthenticate(hdr))
}

// Clone returns a copy of the header.
func (hdr WWWAuthenticate) Clone() Header { return cloneList(hdr, cloneChallenge) }

// Equal compares this header with another for equality.
func (hdr WWWAuthenticate) Equal(val any) bool { return equalList(hdr, val, equalChallenge) }

// IsValid checks whether the header is syntactically valid.
func (hdr WWWAuthenticate) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr WWWAuthenticate) Split() []Header { return splitList(hdr) }

func (hdr WWWAuthenticate) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr WWWAuthenticate) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *WWWAuthenticate) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[WWWAuthenticate](data)
	*hdr = h
	return errtrace.Wrap(err)
}
