package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// MIMEVersion represents the MIME-Version header field.
type MIMEVersion struct {
	Major Number
	Minor Number
}

// CanonicName returns the canonical name of the header.
func (*MIMEVersion) CanonicName() Name { return "MIME-Version" }

// CompactName returns the compact name of the header.
func (*MIMEVersion) CompactName() Name { return "MIME-Version" }

// RenderTo writes the header to the provided writer.
func (hdr *MIMEVersion) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *MIMEVersion) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *MIMEVersion) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *MIMEVersion) Format(f fmt.State, verb rune) {
	type hideMethods MIMEVersion
	type MIMEVersion hideMethods
	formatHeader(f, verb, hdr, (*MIMEVersion)(hdr))
}

func (hdr *MIMEVersion) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *MIMEVersion) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*MIMEVersion](data)
	if h == nil {
		*hdr = MIMEVersion{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *MIMEVersion) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return hdr.Major.String() + "." + hdr.Minor.String()
}

// Clone returns a copy of the header.
func (hdr *MIMEVersion) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *MIMEVersion) Equal(val any) bool {
	var other *MIMEVersion
	switch v := val.(type) {
	case MIMEVersion:
		other = &v
	case *MIMEVersion:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.Major.Equal(other.Major) && hdr.Minor.Equal(other.Minor)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *MIMEVersion) IsValid() bool { return hdr != nil }

func buildFromMIMEVersionNode(node *grammar.Node) *MIMEVersion {
	return &MIMEVersion{
		Major: types.MustParseNumber(grammar.MustGetNode(node, "major").Value),
		Minor: types.MustParseNumber(grammar.MustGetNode(node, "minor").Value),
	}
}
