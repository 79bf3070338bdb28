package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// ContentDisposition represents the Content-Disposition header field.
// The Content-Disposition header field describes how the message body is to be interpreted by the UAC or UAS.
type ContentDisposition struct {
	Type   string
	Params Params
}

// CanonicName returns the canonical name of the header.
func (*ContentDisposition) CanonicName() Name { return "Content-Disposition" }

// CompactName returns the compact name of the header.
func (*ContentDisposition) CompactName() Name { return "Content-Disposition" }

// RenderTo writes the header to the provided writer.
func (hdr *ContentDisposition) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *ContentDisposition) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *ContentDisposition) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *ContentDisposition) Format(f fmt.State, verb rune) {
	type hideMethods ContentDisposition
	type ContentDisposition hideMethods
	formatHeader(f, verb, hdr, (*ContentDisposition)(hdr))
}

func (hdr *ContentDisposition) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *ContentDisposition) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*ContentDisposition](data)
	if h == nil {
		*hdr = ContentDisposition{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *ContentDisposition) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return hdr.Type + hdr.Params.String()
}

// Clone returns a copy of the header.
func (hdr *ContentDisposition) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *ContentDisposition) Equal(val any) bool {
	var other *ContentDisposition
	switch v := val.(type) {
	case ContentDisposition:
		other = &v
	case *ContentDisposition:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return util.EqFold(hdr.Type, other.Type) && compareParams(hdr.Params, other.Params, "handling")
}

// IsValid checks whether the header is syntactically valid.
func (hdr *ContentDisposition) IsValid() bool {
	return hdr != nil && grammar.IsToken(hdr.Type) && validateParams(hdr.Params)
}

func buildFromContentDispositionNode(node *grammar.Node) *ContentDisposition {
	return &ContentDisposition{
		Type:   grammar.MustGetNode(node, "disp-type").String(),
		Params: buildParams(node.Children[1:]),
	}
}
