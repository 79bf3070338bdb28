package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ProxyAuthenticate represents the Proxy-Authenticate header field.
// The Proxy-Authenticate header field value contains an authentication challenge.
type ProxyAuthenticate []Challenge

func (ProxyAuthenticate) CanonicName() Name { return "Proxy-Authenticate" }

func (ProxyAuthenticate) CompactName() Name { return "Proxy-Authenticate" }

// RenderTo writes the header to the provided writer, one line per value.
func (hdr ProxyAuthenticate) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderLinesTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ProxyAuthenticate) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr ProxyAuthenticate) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr ProxyAuthenticate) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ProxyAuthenticate) Format(f fmt.State, verb rune) {
	type hideMethods ProxyAuthenticate
	type ProxyAuthenticate hideMethods
	formatHeader(f, verb, hdr, ProxyAuthenticate(hdr))
}

// Clone returns a copy of the header.
func (hdr ProxyAuthenticate) Clone() Header { return cloneList(hdr, cloneChallenge) }

// Equal compares this header with another for equality.
func (hdr ProxyAuthenticate) Equal(val any) bool { return equalList(hdr, val, equalChallenge) }

// IsValid checks whether the header is syntactically valid.
func (hdr ProxyAuthenticate) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr ProxyAuthenticate) Split() []Header { return splitList(hdr) }

func (hdr ProxyAuthenticate) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr ProxyAuthenticate) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ProxyAuthenticate) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ProxyAuthenticate](data)
	*hdr = h
	return errtrace.Wrap(err)
}
