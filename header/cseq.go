package header

import (
	"fmt"
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// CSeq represents the CSeq header field.
// The CSeq header field contains a sequence number and the request method.
// The method is optional so that a response carrying only the number is still structured.
type CSeq struct {
	SeqNum Number
	Method RequestMethod
}

// CanonicName returns the canonical name of the header.
func (*CSeq) CanonicName() Name { return "CSeq" }

// CompactName returns the compact name of the header.
func (*CSeq) CompactName() Name { return "CSeq" }

// RenderTo writes the header to the provided writer.
func (hdr *CSeq) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *CSeq) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *CSeq) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *CSeq) Format(f fmt.State, verb rune) {
	type hideMethods CSeq
	type CSeq hideMethods
	formatHeader(f, verb, hdr, (*CSeq)(hdr))
}

func (hdr *CSeq) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *CSeq) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*CSeq](data)
	if h == nil {
		*hdr = CSeq{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *CSeq) RenderValue() string {
	if hdr == nil {
		return ""
	}
	if hdr.Method == "" {
		return hdr.SeqNum.String()
	}
	return hdr.SeqNum.String() + " " + string(hdr.Method)
}

// Clone returns a copy of the header.
func (hdr *CSeq) Clone() Header {
	if hdr == nil {
		return hdr
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
// Methods are compared case-sensitively.
func (hdr *CSeq) Equal(val any) bool {
	var other *CSeq
	switch v := val.(type) {
	case CSeq:
		other = &v
	case *CSeq:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.SeqNum.Equal(other.SeqNum) && hdr.Method == other.Method
}

// IsValid checks whether the header is syntactically valid.
// The sequence number range is not checked here, see [Number.FitsUint32].
func (hdr *CSeq) IsValid() bool {
	return hdr != nil && (hdr.Method == "" || grammar.IsToken(hdr.Method))
}

func buildFromCSeqNode(node *grammar.Node) *CSeq {
	hdr := &CSeq{SeqNum: types.MustParseNumber(grammar.MustGetNode(node, "seq-num").Value)}
	if m, ok := grammar.Child(node, "Method"); ok {
		hdr.Method = RequestMethod(m.String())
	}
	return hdr
}
