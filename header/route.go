package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
)

// Route represents the Route header field.
// The Route header field forces routing for a request through the listed set of proxies.
type Route []NameAddr

func (Route) CanonicName() Name { return "Route" }

func (Route) CompactName() Name { return "Route" }

// RenderTo writes the header to the provided writer.
func (hdr Route) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Route) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Route) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Route) Format(f fmt.State, verb rune) {
	type hideMethods Route
	type Route hideMethods
	formatHeader(f, verb, hdr, Route(hdr))
}

// Clone returns a copy of the header.
func (hdr Route) Clone() Header { return cloneList(hdr, cloneNameAddr) }

// Equal compares this header with another for equality.
func (hdr Route) Equal(val any) bool { return equalList(hdr, val, equalNameAddr) }

// IsValid checks whether the header is syntactically valid.
func (hdr Route) IsValid() bool {
	for _, addr := range hdr {
		if !addr.IsValid() {
			return false
		}
	}
	return hdr != nil
}

// Split returns a header per address.
func (hdr Route) Split() []Header { return splitList(hdr) }

func (hdr Route) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Route) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Route) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Route](data)
	*hdr = h
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr Route) RenderValue() string { return joinList(hdr, ", ") }
