package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// Contact represents the Contact header field.
// The Contact header field provides URIs that can be used to contact the UA for subsequent requests.
// An empty non-nil list is the "*" wildcard of REGISTER requests.
type Contact []NameAddr

func (Contact) CanonicName() Name { return "Contact" }

func (Contact) CompactName() Name { return "m" }

// RenderTo writes the header to the provided writer.
func (hdr Contact) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr Contact) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr Contact) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr Contact) Format(f fmt.State, verb rune) {
	type hideMethods Contact
	type Contact hideMethods
	formatHeader(f, verb, hdr, Contact(hdr))
}

// Clone returns a copy of the header.
func (hdr Contact) Clone() Header { return cloneList(hdr, cloneNameAddr) }

// Equal compares this header with another for equality.
func (hdr Contact) Equal(val any) bool { return equalList(hdr, val, equalNameAddr) }

// IsValid checks whether the header is syntactically valid.
func (hdr Contact) IsValid() bool {
	for _, addr := range hdr {
		if !addr.IsValid() {
			return false
		}
	}
	return hdr != nil
}

// Split returns a header per address.
func (hdr Contact) Split() []Header { return splitList(hdr) }

func (hdr Contact) combine(other Header) (Header, bool) { return combineList(hdr, other) }

func (hdr Contact) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Contact) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Contact](data)
	*hdr = h
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr Contact) RenderValue() string {
	if hdr == nil {
		return ""
	}
	if len(hdr) == 0 {
		return "*"
	}
	return joinList(hdr, ", ")
}

// IsWildcard reports whether the header is "Contact: *".
func (hdr Contact) IsWildcard() bool { return hdr != nil && len(hdr) == 0 }

func buildFromContactNodes(nodes grammar.Nodes) Contact {
	if len(nodes) == 1 && nodes[0].Key == "STAR" {
		return Contact{}
	}
	return Contact(buildFromNameAddrNodes(nodes))
}
