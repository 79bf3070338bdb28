package header

//go:generate go tool errtrace -w .

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"slices"
	"strconv"
	"strings"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/errorutil"
	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Addr represents a network address consisting of a host and optional port.
type Addr = types.Addr

// Host creates an Addr from a hostname without a port.
func Host(host string) Addr { return types.Host(host) }

// HostPort creates an Addr from a hostname and port.
func HostPort(host string, port uint16) Addr { return types.HostPort(host, port) }

// Params represents header parameters as an ordered list.
type Params = types.Params

// Number is an unsigned decimal of any width.
type Number = types.Number

// Num returns a [Number] of the given value.
func Num(v uint64) Number { return types.NewNumber(v) }

// ProtoInfo represents SIP protocol information (name and version).
type ProtoInfo = types.ProtoInfo

// TransportProto represents a transport protocol (UDP, TCP, TLS, SCTP, WS, WSS).
type TransportProto = types.TransportProto

// RequestMethod represents a SIP request method (INVITE, ACK, BYE, etc.).
type RequestMethod = types.RequestMethod

// RenderOptions contains options for rendering headers and URIs.
type RenderOptions = types.RenderOptions

// Header represents a generic SIP header.
type Header interface {
	types.Renderer
	types.Cloneable[Header]
	types.ValidFlag
	types.Equalable
	CanonicName() Name
	CompactName() Name
	RenderValue() string
}

// Splitter is implemented by list headers that are rendered as one header line per member.
type Splitter interface {
	Split() []Header
}

// Name represents a SIP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

var compactNames = map[Name]Name{
	"Content-Type":     "c",
	"Content-Encoding": "e",
	"From":             "f",
	"Call-ID":          "i",
	"Supported":        "k",
	"Content-Length":   "l",
	"Contact":          "m",
	"Subject":          "s",
	"To":               "t",
	"Via":              "v",
}

// CanonicName converts name to the canonical form.
// Known SIP headers and their compact forms map to the RFC 3261 spelling ("cseq" and "Cseq" to "CSeq", "i" to "Call-ID"),
// any other name is canonicalized like a MIME header key ("x-custom-header" to "X-Custom-Header").
func CanonicName[T ~string](name T) Name {
	s := util.TrimSP(string(name))
	if n, ok := grammar.CanonicName(s); ok {
		return Name(n)
	}
	return Name(textproto.CanonicalMIMEHeaderKey(s))
}

// CompactName returns the compact form of the header name or the canonical name if it has none.
func CompactName[T ~string](name T) Name {
	n := CanonicName(name)
	if c, ok := compactNames[n]; ok {
		return c
	}
	return n
}

var singularNames = map[Name]bool{
	"Authentication-Info": true,
	"Call-ID":             true,
	"Content-Disposition": true,
	"Content-Length":      true,
	"Content-Type":        true,
	"CSeq":                true,
	"Date":                true,
	"Expires":             true,
	"From":                true,
	"Max-Forwards":        true,
	"MIME-Version":        true,
	"Min-Expires":         true,
	"Organization":        true,
	"Priority":            true,
	"Reply-To":            true,
	"Retry-After":         true,
	"Subject":             true,
	"Timestamp":           true,
	"To":                  true,
}

// IsListType reports whether repeated occurrences of the header combine into one sequence.
// Every unknown extension header is a list.
func IsListType[T ~string](name T) bool {
	return !singularNames[CanonicName(name)]
}

// IsExtension reports whether the header is kept as an uninterpreted extension value.
func IsExtension(hdr Header) bool {
	_, ok := hdr.(*Any)
	return ok
}

type combiner interface {
	combine(other Header) (Header, bool)
}

// Combine merges the second occurrence of a list-type header into the first one.
// Structured values of the same type are concatenated, any other pair gives [Any]
// with the raw values of both in the wire order.
func Combine(hdr1, hdr2 Header) Header {
	if c, ok := hdr1.(combiner); ok {
		if hdr, ok := c.combine(hdr2); ok {
			return hdr
		}
	}
	return &Any{
		Name:   string(hdr1.CanonicName()),
		Values: append(rawValues(hdr1), rawValues(hdr2)...),
	}
}

func rawValues(hdr Header) []string {
	if h, ok := hdr.(*Any); ok {
		return slices.Clone(h.Values)
	}
	if sp, ok := hdr.(Splitter); ok {
		parts := sp.Split()
		vals := make([]string, 0, len(parts))
		for _, h := range parts {
			vals = append(vals, h.RenderValue())
		}
		return vals
	}
	return []string{hdr.RenderValue()}
}

func combineList[S interface {
	~[]E
	Header
}, E any](hdr S, other Header) (Header, bool) {
	o, ok := other.(S)
	if !ok {
		return nil, false
	}
	return append(slices.Clip(hdr), o...), true
}

func splitList[S interface {
	~[]E
	Header
}, E any](hdr S) []Header {
	if len(hdr) == 0 {
		return []Header{hdr}
	}
	hdrs := make([]Header, len(hdr))
	for i := range hdr {
		hdrs[i] = S{hdr[i]}
	}
	return hdrs
}

func cloneList[S ~[]E, E any](hdr S, clone func(E) E) S {
	if hdr == nil {
		return nil
	}
	hdr2 := make(S, len(hdr))
	for i := range hdr {
		hdr2[i] = clone(hdr[i])
	}
	return hdr2
}

func equalList[S ~[]E, E any](hdr S, val any, eq func(E, E) bool) bool {
	var other S
	switch v := val.(type) {
	case S:
		other = v
	case *S:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, eq)
}

func joinList[S ~[]E, E fmt.Stringer](hdr S, sep string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := range hdr {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(hdr[i].String())
	}
	return sb.String()
}

func joinStrings[S ~[]E, E ~string](hdr S, sep string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := range hdr {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(string(hdr[i]))
	}
	return sb.String()
}

func headerName(hdr Header, opts *RenderOptions) Name {
	if opts != nil && opts.Compact {
		return hdr.CompactName()
	}
	return hdr.CanonicName()
}

// renderHeaderTo writes "Name: value" of a single line header.
func renderHeaderTo(w io.Writer, hdr Header, opts *RenderOptions) (num int, err error) {
	return errtrace.Wrap2(fmt.Fprint(w, headerName(hdr, opts), ": ", hdr.RenderValue()))
}

func renderHeader(hdr Header, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// renderLinesTo writes every member of a list header on its own line.
func renderLinesTo(w io.Writer, hdr Splitter, opts *RenderOptions) (num int, err error) {
	parts := hdr.Split()
	if len(parts) == 1 {
		return errtrace.Wrap2(renderHeaderTo(w, parts[0], opts))
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, h := range parts {
		if i > 0 {
			sb.WriteString("\r\n")
		}
		renderHeaderTo(sb, h, opts) //nolint:errcheck
	}
	return errtrace.Wrap2(io.WriteString(w, sb.String()))
}

// formatHeader implements fmt.Formatter of headers.
// %s prints the value, %+s the whole header line, raw is printed for other verbs.
func formatHeader(f fmt.State, verb rune, hdr Header, raw any) {
	switch verb {
	case 's':
		if f.Flag('+') {
			hdr.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, hdr.RenderValue())
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render(nil)))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.RenderValue()))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), raw)
	}
}

// Parser is a function type for parsing a custom SIP header.
type Parser func(name string, value []byte) Header

var customParsers sync.Map // map[string]Parser

// RegisterParser registers a custom SIP header parser.
// It is applied to headers that are not recognized by the grammar.
func RegisterParser(name string, parser Parser) {
	customParsers.Store(util.LCase(name), parser)
}

// UnregisterParser unregisters a custom SIP header parser.
func UnregisterParser(name string) {
	customParsers.Delete(util.LCase(name))
}

// Parse parses a single SIP header line from the given input s (string or []byte).
// A value that does not match the grammar of a known header is returned as [Any].
//
//	hdr, err := header.Parse("From: <sip:alice@example.com>;tag=1234")
func Parse[T ~string | ~[]byte](s T) (Header, error) {
	node, err := grammar.ParseMessageHeader(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return FromNode(node), nil
}

// FromNode creates a Header from a message-header node.
// The node key is the canonical header name or "extension-header", the first child is the header-name.
// End users usually don't need to use this function directly and should use [Parse] instead.
func FromNode(node *grammar.Node) Header {
	vals := node.Children[1:]
	switch node.Key {
	case "Accept":
		return buildFromAcceptNodes(vals)
	case "Accept-Encoding":
		return buildFromAcceptEncodingNodes(vals)
	case "Accept-Language":
		return buildFromAcceptLanguageNodes(vals)
	case "Alert-Info":
		return AlertInfo(buildFromInfoNodes(vals))
	case "Allow":
		return buildFromAllowNodes(vals)
	case "Authentication-Info":
		return buildFromAuthenticationInfoNodes(vals)
	case "Authorization":
		return Authorization{buildFromCredentialsNode(vals[0])}
	case "Call-ID":
		return CallID(vals[0].String())
	case "Call-Info":
		return CallInfo(buildFromInfoNodes(vals))
	case "Contact":
		return buildFromContactNodes(vals)
	case "Content-Disposition":
		return buildFromContentDispositionNode(vals[0])
	case "Content-Encoding":
		return ContentEncoding(nodeStrings(vals))
	case "Content-Language":
		return ContentLanguage(nodeStrings(vals))
	case "Content-Length":
		return ContentLength(types.MustParseNumber(vals[0].Value))
	case "Content-Type":
		return (*ContentType)(util.Ptr(buildFromMIMETypeNode(vals[0])))
	case "CSeq":
		return buildFromCSeqNode(vals[0])
	case "Date":
		return buildFromDateNode(vals[0])
	case "Error-Info":
		return ErrorInfo(buildFromInfoNodes(vals))
	case "Expires":
		return buildFromExpiresNode(vals[0])
	case "From":
		return (*From)(util.Ptr(buildFromNameAddrNode(vals[0])))
	case "In-Reply-To":
		return buildFromInReplyToNodes(vals)
	case "Max-Forwards":
		return MaxForwards(types.MustParseNumber(vals[0].Value))
	case "MIME-Version":
		return buildFromMIMEVersionNode(vals[0])
	case "Min-Expires":
		return MinExpires(types.MustParseNumber(vals[0].Value))
	case "Organization":
		return Organization(vals[0].String())
	case "Priority":
		return Priority(vals[0].String())
	case "Proxy-Authenticate":
		return ProxyAuthenticate{buildFromChallengeNode(vals[0])}
	case "Proxy-Authorization":
		return ProxyAuthorization{buildFromCredentialsNode(vals[0])}
	case "Proxy-Require":
		return ProxyRequire(nodeStrings(vals))
	case "Record-Route":
		return RecordRoute(buildFromNameAddrNodes(vals))
	case "Reply-To":
		return (*ReplyTo)(util.Ptr(buildFromNameAddrNode(vals[0])))
	case "Require":
		return Require(nodeStrings(vals))
	case "Retry-After":
		return buildFromRetryAfterNode(vals[0])
	case "Route":
		return Route(buildFromNameAddrNodes(vals))
	case "Server":
		return Server(buildFromProductNodes(vals))
	case "Subject":
		return Subject(vals[0].String())
	case "Supported":
		return Supported(nodeStrings(vals))
	case "Timestamp":
		return buildFromTimestampNode(vals[0])
	case "To":
		return (*To)(util.Ptr(buildFromNameAddrNode(vals[0])))
	case "Unsupported":
		return Unsupported(nodeStrings(vals))
	case "User-Agent":
		return UserAgent(buildFromProductNodes(vals))
	case "Via":
		return buildFromViaNodes(vals)
	case "Warning":
		return buildFromWarningNodes(vals)
	case "WWW-Authenticate":
		return WWWAuthenticate{buildFromChallengeNode(vals[0])}
	case "extension-header":
		name := node.Children[0].String()
		if prs, ok := customParsers.Load(util.LCase(name)); ok && prs != nil {
			//nolint:forcetypeassert
			if hdr := prs.(Parser)(name, vals[0].Value); hdr != nil {
				return hdr
			}
		}
		return &Any{Name: name, Values: []string{vals[0].String()}}
	default:
		return nil
	}
}

// nodeStrings returns the matched text of every node.
func nodeStrings(nodes grammar.Nodes) []string {
	if nodes == nil {
		return nil
	}
	ss := make([]string, len(nodes))
	for i, n := range nodes {
		ss[i] = n.String()
	}
	return ss
}

// buildParams collects the generic-param and m-parameter nodes.
// Values are kept as they appear on the wire, quoted strings keep their quotes.
func buildParams(nodes grammar.Nodes) Params {
	var params Params
	for _, n := range nodes {
		name, ok := grammar.Child(n, "pname")
		if !ok {
			continue
		}
		if val, ok := grammar.Child(n, "pvalue"); ok {
			params = params.Add(name.String(), val.String())
		} else {
			params = params.AddFlag(name.String())
		}
	}
	return params
}

// compareParams compares header parameters the way RFC 3261 Section 19.1.4 compares URI parameters:
// a parameter present in both lists must match, a special one must be present in both.
// Unquoted values are compared case-insensitively.
func compareParams(params1, params2 Params, specParams ...string) bool {
	for _, p := range params1 {
		v2, ok := params2.Get(p.Name)
		if !ok {
			continue
		}
		v1, _ := params1.Get(p.Name)
		if grammar.IsQuoted(v1) || grammar.IsQuoted(v2) {
			if v1 != v2 {
				return false
			}
		} else if !util.EqFold(v1, v2) {
			return false
		}
	}
	for _, k := range specParams {
		if params1.Has(k) != params2.Has(k) {
			return false
		}
	}
	return true
}

func validateParams(params Params) bool {
	for _, p := range params {
		if !grammar.IsToken(p.Name) {
			return false
		}
		if p.HasValue && !(grammar.IsToken(p.Value) || grammar.IsHost(p.Value) || grammar.IsQuoted(p.Value)) {
			return false
		}
	}
	return true
}

type headerData struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ToJSON encodes the header as a JSON object with the canonical name and the list of line values.
func ToJSON(hdr Header) ([]byte, error) {
	var hd *headerData
	if hdr != nil {
		hd = &headerData{
			Name:   string(hdr.CanonicName()),
			Values: rawValues(hdr),
		}
	}
	return errtrace.Wrap2(json.Marshal(hd))
}

var errNotHeaderJSON errorutil.Error = "not a header JSON"

// FromJSON decodes a header encoded by [ToJSON].
func FromJSON[T ~string | ~[]byte](data T) (Header, error) {
	var hd *headerData
	if err := json.Unmarshal([]byte(data), &hd); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hd == nil || len(hd.Values) == 0 {
		return nil, errtrace.Wrap(errNotHeaderJSON)
	}

	var hdr Header
	for _, v := range hd.Values {
		h, err := Parse(hd.Name + ": " + v)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("parse header %q: %w", hd.Name, err))
		}
		if hdr == nil {
			hdr = h
		} else {
			hdr = Combine(hdr, h)
		}
	}
	return hdr, nil
}

// headerFromJSON decodes data into the header type H, JSON null gives the zero value.
func headerFromJSON[H Header](data []byte) (H, error) {
	var zero H
	gh, err := FromJSON(data)
	if err != nil {
		if errors.Is(err, errNotHeaderJSON) {
			return zero, nil
		}
		return zero, errtrace.Wrap(err)
	}
	h, ok := gh.(H)
	if !ok {
		return zero, errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, zero))
	}
	return h, nil
}

// isTokenSeq reports whether s is a sequence of tokens separated by single spaces.
func isTokenSeq(s string) bool {
	if s == "" {
		return false
	}
	for f := range strings.SplitSeq(s, " ") {
		if !grammar.IsToken(f) {
			return false
		}
	}
	return true
}
