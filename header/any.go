package header

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// Any is an extension header: a header with an unknown name or a known header whose value
// does not match its grammar. Values hold the raw text of each occurrence in the wire order.
type Any struct {
	Name   string
	Values []string
}

func (hdr *Any) CanonicName() Name { return CanonicName(hdr.Name) }

func (hdr *Any) CompactName() Name { return CompactName(hdr.Name) }

// RenderTo writes the header to the provided writer, one line per value.
func (hdr *Any) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderLinesTo(w, hdr, opts))
}

func (hdr *Any) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *Any) String() string { return hdr.RenderValue() }

// RenderValue returns the values joined with a comma.
func (hdr *Any) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return strings.Join(hdr.Values, ", ")
}

func (hdr *Any) Format(f fmt.State, verb rune) {
	type hideMethods Any
	type Any hideMethods
	formatHeader(f, verb, hdr, (*Any)(hdr))
}

func (hdr *Any) Clone() Header {
	if hdr == nil {
		return hdr
	}
	return &Any{Name: hdr.Name, Values: slices.Clone(hdr.Values)}
}

// Equal compares canonical header names and raw values.
func (hdr *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.CanonicName() == other.CanonicName() && slices.Equal(hdr.Values, other.Values)
}

func (hdr *Any) IsValid() bool {
	return hdr != nil && grammar.IsToken(hdr.Name) && !slices.ContainsFunc(hdr.Values, func(v string) bool {
		return !grammar.IsText(v)
	})
}

// Split returns a header per value.
func (hdr *Any) Split() []Header {
	if hdr == nil || len(hdr.Values) <= 1 {
		return []Header{hdr}
	}
	hdrs := make([]Header, len(hdr.Values))
	for i, v := range hdr.Values {
		hdrs[i] = &Any{Name: hdr.Name, Values: []string{v}}
	}
	return hdrs
}

func (hdr *Any) combine(other Header) (Header, bool) {
	return &Any{Name: hdr.Name, Values: append(slices.Clone(hdr.Values), rawValues(other)...)}, true
}

func (hdr *Any) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Any) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[Header](data)
	if err != nil {
		*hdr = Any{}
		return errtrace.Wrap(err)
	}
	switch v := h.(type) {
	case nil:
		*hdr = Any{}
	case *Any:
		*hdr = *v
	default:
		*hdr = Any{Name: string(v.CanonicName()), Values: rawValues(v)}
	}
	return nil
}
