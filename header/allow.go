package header

import (
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// Allow represents the Allow header field.
// The Allow header field lists the set of methods supported by the UA generating the message.
type Allow []RequestMethod

func (Allow) CanonicName() Name { return "Allow" }

func (Allow) CompactName() Name { return "Allow" }

// RenderTo writes the header to the provided writer.
func (hdr Allow) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Allow) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Allow) String() string { return hdr.RenderValue() }

// RenderValue returns the header value without the name prefix.
func (hdr Allow) RenderValue() string { return joinStrings(hdr, ", ") }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Allow) Format(f fmt.State, verb rune) {
	type hideMethods Allow
	type Allow hideMethods
	formatHeader(f, verb, hdr, Allow(hdr))
}

// Clone returns a copy of the header.
func (hdr Allow) Clone() Header { return slices.Clone(hdr) }

// Equal compares this header with another for equality.
func (hdr Allow) Equal(val any) bool { return equalList(hdr, val, equalMethod) }

// IsValid checks whether the header is syntactically valid.
func (hdr Allow) IsValid() bool {
	for _, e := range hdr {
		if !grammar.IsToken(e) {
			return false
		}
	}
	return hdr != nil
}

// Split returns a header per method.
func (hdr Allow) Split() []Header { return splitList(hdr) }

func (hdr Allow) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Allow) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Allow) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Allow](data)
	*hdr = h
	return errtrace.Wrap(err)
}

// equalMethod compares methods case-sensitively, method names are case-sensitive tokens.
func equalMethod(a, b RequestMethod) bool { return a == b }

func buildFromAllowNodes(nodes grammar.Nodes) Allow {
	hdr := make(Allow, len(nodes))
	for i, n := range nodes {
		hdr[i] = RequestMethod(n.String())
	}
	return hdr
}
