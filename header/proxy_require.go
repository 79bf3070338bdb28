package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// ProxyRequire represents the Proxy-Require header field.
// The Proxy-Require header field lists the option tags the proxy must support.
type ProxyRequire []string

func (ProxyRequire) CanonicName() Name { return "Proxy-Require" }

func (ProxyRequire) CompactName() Name { return "Proxy-Require" }

// RenderTo writes the header to the provided writer.
func (hdr ProxyRequire) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr ProxyRequire) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr ProxyRequire) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr ProxyRequire) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr ProxyRequire) Format(f fmt.State, verb rune) {
	type hideMethods ProxyRequire
	type ProxyRequire hideMethods
	formatHeader(f, verb, hdr, ProxyRequire(hdr))
}

// Clone returns a copy of the header.
func (hdr ProxyRequire) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr ProxyRequire) Equal(val any) bool { return equalList(hdr, val, util.EqFold[string, string]) }

// IsValid checks whether the header is syntactically valid.
func (hdr ProxyRequire) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return len(hdr) > 0
}

func (hdr ProxyRequire) Split() []Header { return splitList(hdr) }

func (hdr ProxyRequire) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr ProxyRequire) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ProxyRequire) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[ProxyRequire](data)
	*hdr = h
	return errtrace.Wrap(err)
}
