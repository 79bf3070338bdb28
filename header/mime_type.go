package header

import (
	"errors"
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// MIMEType holds media type information.
type MIMEType struct {
	Type    string
	Subtype string
	Params  Params
}

func (mt MIMEType) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(mt.Type)
	sb.WriteString("/")
	sb.WriteString(mt.Subtype)
	mt.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (mt MIMEType) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, mt.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(mt.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, mt.String())
			return
		}

		type hideMethods MIMEType
		type MIMEType hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), MIMEType(mt))
	}
}

func (mt MIMEType) Equal(val any) bool {
	var other MIMEType
	switch v := val.(type) {
	case MIMEType:
		other = v
	case *MIMEType:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return util.EqFold(mt.Type, other.Type) &&
		util.EqFold(mt.Subtype, other.Subtype) &&
		compareParams(mt.Params, other.Params, "charset")
}

func (mt MIMEType) IsValid() bool {
	return grammar.IsToken(mt.Type) &&
		grammar.IsToken(mt.Subtype) &&
		validateParams(mt.Params)
}

func (mt MIMEType) IsZero() bool {
	return mt.Type == "" && mt.Subtype == "" && len(mt.Params) == 0
}

func (mt MIMEType) Clone() MIMEType {
	mt.Params = mt.Params.Clone()
	return mt
}

func (mt MIMEType) MarshalText() ([]byte, error) {
	return []byte(mt.String()), nil
}

func (mt *MIMEType) UnmarshalText(data []byte) error {
	node, err := grammar.Parse(data, grammar.MediaRange)
	if err != nil {
		*mt = MIMEType{}
		if errors.Is(err, grammar.ErrEmptyInput) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	*mt = buildFromMIMETypeNode(node)
	return nil
}

// buildFromMIMETypeNode builds a media type from a media-type or media-range node.
func buildFromMIMETypeNode(node *grammar.Node) MIMEType {
	return MIMEType{
		Type:    grammar.MustGetNode(node, "m-type").String(),
		Subtype: grammar.MustGetNode(node, "m-subtype").String(),
		Params:  buildParams(node.Children[2:]),
	}
}

// MIMERange is a single element of the Accept header, a media range with accept-params.
type MIMERange struct {
	MIMEType
	Params Params
}

func (rng MIMERange) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(rng.MIMEType.String())
	rng.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (rng MIMERange) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, rng.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(rng.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, rng.String())
			return
		}

		type hideMethods MIMERange
		type MIMERange hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), MIMERange(rng))
	}
}

func (rng MIMERange) Equal(val any) bool {
	var other MIMERange
	switch v := val.(type) {
	case MIMERange:
		other = v
	case *MIMERange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return rng.MIMEType.Equal(other.MIMEType) && compareParams(rng.Params, other.Params, "q")
}

func (rng MIMERange) IsValid() bool {
	return rng.MIMEType.IsValid() && validateParams(rng.Params)
}

func (rng MIMERange) IsZero() bool {
	return rng.MIMEType.IsZero() && len(rng.Params) == 0
}

func (rng MIMERange) Clone() MIMERange {
	rng.MIMEType = rng.MIMEType.Clone()
	rng.Params = rng.Params.Clone()
	return rng
}

func buildFromAcceptNodes(nodes grammar.Nodes) Accept {
	hdr := make(Accept, len(nodes))
	for i, n := range nodes {
		hdr[i] = MIMERange{
			MIMEType: buildFromMIMETypeNode(grammar.MustGetNode(n, "media-range")),
			Params:   buildParams(n.Children[1:]),
		}
	}
	return hdr
}

func cloneMIMERange(rng MIMERange) MIMERange { return rng.Clone() }

func equalMIMERange(a, b MIMERange) bool { return a.Equal(b) }

// EncodingRange is a single element of the Accept-Encoding header.
type EncodingRange struct {
	Encoding string
	Params   Params
}

func (rng EncodingRange) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(rng.Encoding)
	rng.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (rng EncodingRange) Equal(val any) bool {
	var other EncodingRange
	switch v := val.(type) {
	case EncodingRange:
		other = v
	case *EncodingRange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(rng.Encoding, other.Encoding) && compareParams(rng.Params, other.Params, "q")
}

func (rng EncodingRange) IsValid() bool {
	return grammar.IsToken(rng.Encoding) && validateParams(rng.Params)
}

func (rng EncodingRange) Clone() EncodingRange {
	rng.Params = rng.Params.Clone()
	return rng
}

// buildFromAcceptEncodingNodes builds the Accept-Encoding header, an empty value means identity only.
func buildFromAcceptEncodingNodes(nodes grammar.Nodes) AcceptEncoding {
	if len(nodes) == 0 {
		return AcceptEncoding{{Encoding: "identity"}}
	}
	hdr := make(AcceptEncoding, len(nodes))
	for i, n := range nodes {
		hdr[i] = EncodingRange{
			Encoding: grammar.MustGetNode(n, "codings").String(),
			Params:   buildParams(n.Children[1:]),
		}
	}
	return hdr
}

func cloneEncodingRange(rng EncodingRange) EncodingRange { return rng.Clone() }

func equalEncodingRange(a, b EncodingRange) bool { return a.Equal(b) }

// LanguageRange is a single element of the Accept-Language header.
type LanguageRange struct {
	Lang   string
	Params Params
}

func (rng LanguageRange) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(rng.Lang)
	rng.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (rng LanguageRange) Equal(val any) bool {
	var other LanguageRange
	switch v := val.(type) {
	case LanguageRange:
		other = v
	case *LanguageRange:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(rng.Lang, other.Lang) && compareParams(rng.Params, other.Params, "q")
}

func (rng LanguageRange) IsValid() bool {
	return rng.Lang != "" && grammar.IsToken(rng.Lang) && validateParams(rng.Params)
}

func (rng LanguageRange) Clone() LanguageRange {
	rng.Params = rng.Params.Clone()
	return rng
}

func buildFromAcceptLanguageNodes(nodes grammar.Nodes) AcceptLanguage {
	hdr := make(AcceptLanguage, len(nodes))
	for i, n := range nodes {
		hdr[i] = LanguageRange{
			Lang:   grammar.MustGetNode(n, "language-range").String(),
			Params: buildParams(n.Children[1:]),
		}
	}
	return hdr
}

func cloneLanguageRange(rng LanguageRange) LanguageRange { return rng.Clone() }

func equalLanguageRange(a, b LanguageRange) bool { return a.Equal(b) }
