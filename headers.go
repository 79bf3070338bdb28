package sipcodec

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/errorutil"
	"github.com/ghettovoice/sipcodec/internal/ioutil"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Headers is an ordered set of message headers keyed by canonical name.
//
// Each name has a single entry, the order of entries is the order of the first appearance of names.
// Repeated occurrences of list headers are merged into the entry with [header.Combine].
type Headers []Header

// NewHeaders builds Headers from the given headers the same way the parser does it.
func NewHeaders(hdrs ...Header) (Headers, error) {
	hs := make(Headers, 0, len(hdrs))
	for _, h := range hdrs {
		if err := hs.Append(h); err != nil {
			return hs, errtrace.Wrap(err)
		}
	}
	return hs, nil
}

func (hs Headers) index(name HeaderName) int {
	name = header.CanonicName(name)
	return slices.IndexFunc(hs, func(h Header) bool { return h.CanonicName() == name })
}

// Get returns the header with the given name, compact and case variants of the name are accepted.
func (hs Headers) Get(name HeaderName) (Header, bool) {
	if i := hs.index(name); i >= 0 {
		return hs[i], true
	}
	return nil, false
}

// Has reports whether there is a header with the given name.
func (hs Headers) Has(name HeaderName) bool { return hs.index(name) >= 0 }

// Names returns canonical names of the headers in order.
func (hs Headers) Names() []HeaderName {
	names := make([]HeaderName, len(hs))
	for i, h := range hs {
		names[i] = h.CanonicName()
	}
	return names
}

// Append adds the header.
// A header of a name already present is merged into the existing entry when the name is a list type,
// otherwise Append fails with [ErrMultipleValues] and the headers stay unchanged.
func (hs *Headers) Append(hdr Header) error {
	if hdr == nil {
		return nil
	}
	i := hs.index(hdr.CanonicName())
	if i < 0 {
		*hs = append(*hs, hdr)
		return nil
	}
	if !header.IsListType(hdr.CanonicName()) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrMultipleValues, string(hdr.CanonicName())))
	}
	(*hs)[i] = header.Combine((*hs)[i], hdr)
	return nil
}

// Set replaces the header of the same name or adds it to the end.
func (hs *Headers) Set(hdr Header) {
	if hdr == nil {
		return
	}
	if i := hs.index(hdr.CanonicName()); i >= 0 {
		(*hs)[i] = hdr
		return
	}
	*hs = append(*hs, hdr)
}

// Delete removes the header with the given name.
func (hs *Headers) Delete(name HeaderName) {
	if i := hs.index(name); i >= 0 {
		*hs = slices.Delete(*hs, i, i+1)
	}
}

func getHdr[H Header](hs Headers, name HeaderName) (H, bool) {
	var zero H
	h, ok := hs.Get(name)
	if !ok {
		return zero, false
	}
	hh, ok := h.(H)
	return hh, ok
}

// Via returns the Via header, ok is false when it is missing or malformed.
func (hs Headers) Via() (header.Via, bool) { return getHdr[header.Via](hs, "Via") }

// From returns the From header, ok is false when it is missing or malformed.
func (hs Headers) From() (*header.From, bool) { return getHdr[*header.From](hs, "From") }

// To returns the To header, ok is false when it is missing or malformed.
func (hs Headers) To() (*header.To, bool) { return getHdr[*header.To](hs, "To") }

// CallID returns the Call-ID header, ok is false when it is missing or malformed.
func (hs Headers) CallID() (header.CallID, bool) { return getHdr[header.CallID](hs, "Call-ID") }

// CSeq returns the CSeq header, ok is false when it is missing or malformed.
func (hs Headers) CSeq() (*header.CSeq, bool) { return getHdr[*header.CSeq](hs, "CSeq") }

// MaxForwards returns the Max-Forwards header, ok is false when it is missing or malformed.
func (hs Headers) MaxForwards() (header.MaxForwards, bool) {
	return getHdr[header.MaxForwards](hs, "Max-Forwards")
}

// Contact returns the Contact header, ok is false when it is missing or malformed.
func (hs Headers) Contact() (header.Contact, bool) { return getHdr[header.Contact](hs, "Contact") }

// ContentLength returns the Content-Length header, ok is false when it is missing or malformed.
func (hs Headers) ContentLength() (header.ContentLength, bool) {
	return getHdr[header.ContentLength](hs, "Content-Length")
}

// ContentType returns the Content-Type header, ok is false when it is missing or malformed.
func (hs Headers) ContentType() (*header.ContentType, bool) {
	return getHdr[*header.ContentType](hs, "Content-Type")
}

// RenderTo writes the headers, one "Name: value" line terminated with CRLF per list member.
func (hs Headers) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, h := range hs {
		parts := []Header{h}
		if sp, ok := h.(header.Splitter); ok {
			parts = sp.Split()
		}
		for _, p := range parts {
			cw.Call(func(w io.Writer) (int, error) {
				return errtrace.Wrap2(p.RenderTo(w, opts))
			})
			cw.WriteString("\r\n") //nolint:errcheck
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the headers as they are written by [Headers.RenderTo].
func (hs Headers) Render(opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hs.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (hs Headers) String() string { return hs.Render(nil) }

// Format implements [fmt.Formatter] for custom formatting.
func (hs Headers) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'q':
		fmt.Fprintf(f, fmt.FormatString(f, verb), hs.Render(nil))
	default:
		type hideMethods Headers
		type Headers hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Headers(hs))
	}
}

// Clone returns a deep copy of the headers.
func (hs Headers) Clone() Headers {
	if hs == nil {
		return nil
	}
	hs2 := make(Headers, len(hs))
	for i, h := range hs {
		hs2[i] = h.Clone()
	}
	return hs2
}

// Equal reports whether both have the same set of names with equal headers, the order is not significant.
func (hs Headers) Equal(val any) bool {
	var other Headers
	switch v := val.(type) {
	case Headers:
		other = v
	case *Headers:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	if len(hs) != len(other) {
		return false
	}
	for _, h := range hs {
		oh, ok := other.Get(h.CanonicName())
		if !ok || !h.Equal(oh) {
			return false
		}
	}
	return true
}

// IsValid reports whether every header is valid.
func (hs Headers) IsValid() bool {
	for _, h := range hs {
		if h == nil || !h.IsValid() {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the headers as an array of {"name", "values"} objects.
func (hs Headers) MarshalJSON() ([]byte, error) {
	raws := make([]json.RawMessage, len(hs))
	for i, h := range hs {
		data, err := header.ToJSON(h)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		raws[i] = data
	}
	return errtrace.Wrap2(json.Marshal(raws))
}

// UnmarshalJSON decodes the headers produced by [Headers.MarshalJSON].
func (hs *Headers) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return errtrace.Wrap(err)
	}
	if raws == nil {
		*hs = nil
		return nil
	}
	hs2 := make(Headers, 0, len(raws))
	for _, raw := range raws {
		h, err := header.FromJSON(raw)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if err := hs2.Append(h); err != nil {
			return errtrace.Wrap(err)
		}
	}
	*hs = hs2
	return nil
}
