package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// ProxyAuthorization represents the Proxy-Authorization header field.
// The Proxy-Authorization header field allows the client to identify itself to a proxy that requires authentication.
type ProxyAuthorization []Credentials

func (ProxyAuthorization) CanonicName() Name { return "Proxy-Authorization" }

func (ProxyAuthorization) CompactName() Name { return "Proxy-Authorization" }

// RenderTo writes the header to the provided writer, one line per value.
func (hdr ProxyAuthorization) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderLinesTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ProxyAuthorization) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr ProxyAuthorization) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr ProxyAuthorization) RenderValue() string { return joinList(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ProxyAuthorization) Format(f fmt.State, verb rune) {
	type hideMethods ProxyAuthorization
	type ProxyAuthorization hideMethods
	formatHeader(f, verb, hdr, ProxyAuthorization(hdr))
}

// Clone returns a copy of the header.
func (hdr ProxyAuthorization) Clone() Header { return cloneList(hdr, cloneCredentials) }

// Equal compares this header with another for equality.
func (hdr ProxyAuthorization) Equal(val any) bool { return equalList(hdr, val, equalCredentials) }

// IsValid checks whether the header is syntactically valid.
func (hdr ProxyAuthorization) IsValid() bool {
	for _, e := range hdr {
		if !e.IsValid() {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr ProxyAuthorization) Split() []Header { return splitList(hdr) }

func (hdr ProxyAuthorization) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr ProxyAuthorization) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ProxyAuthorization) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ProxyAuthorization](data)
	*hdr = h
	return errtrace.Wrap(err)
}
