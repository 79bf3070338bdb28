package uri

//go:generate go tool errtrace -w .

import (
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

// ParseAddr parses a network address from the given input s (string or []byte).
func ParseAddr[T ~string | ~[]byte](s T) (Addr, error) { return errtrace.Wrap2(types.ParseAddr(s)) }

// Params represents URI parameters or headers as an ordered list.
type Params = types.Params

// RenderOptions contains options for rendering URIs and headers.
type RenderOptions = types.RenderOptions

type TransportProto = types.TransportProto

type RequestMethod = types.RequestMethod

// URI represents generic URI (SIP, SIPS, tel or any other absoluteURI).
type URI interface {
	types.Renderer
	types.Cloneable[URI]
	types.ValidFlag
	types.Equalable
}

// Parse parses any URI from a given input s (string or []byte).
//
// Parsing of sip/sips returns [SIP], tel returns [Tel], any other URI returns [Any].
// A sip URI that does not match the SIP-URI rule (for example one with a bare IPv6 host)
// is kept as [Any] the same way the Request-URI rule does it.
func Parse[T ~string | ~[]byte](s T) (URI, error) {
	node, err := grammar.ParseRequestURI(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return FromNode(node), nil
}

// FromNode creates a URI from a grammar node.
//
//   - node "SIP-URI" or "SIPS-URI" returns [SIP];
//   - node "telephone-uri" returns [Tel];
//   - node "absoluteURI" returns [Tel] for a valid tel URI and [Any] otherwise;
//   - wrapper nodes "Request-URI" and "addr-spec" return the URI they wrap.
//
// End users usually don't need to use this function directly and should use [Parse] instead.
func FromNode(node *grammar.Node) URI {
	switch node.Key {
	case "SIP-URI", "SIPS-URI":
		return buildFromSIPURINode(node)
	case "telephone-uri":
		return buildFromTelURINode(node)
	case "absoluteURI":
		if util.EqFold(grammar.MustGetNode(node, "scheme").String(), "tel") {
			if tn, err := grammar.ParseTelURI(node.Value); err == nil {
				return buildFromTelURINode(tn)
			}
		}
		return buildFromAbsoluteURINode(node)
	case "Request-URI", "addr-spec":
		return FromNode(node.Children[0])
	default:
		panic(errorutil.Errorf("unexpected URI node %q", node.Key))
	}
}

// GetScheme returns the scheme of the URI.
//
// SIP and SIPS URIs return "sip" or "sips" respectively, Tel URI returns "tel",
// Any URI returns the value of [Any.Scheme] field lower-cased.
// If the URI is nil, an empty string is returned.
// If the URI is of unknown type, a panic is raised.
func GetScheme(u URI) string {
	if u == nil {
		return ""
	}

	switch u := u.(type) {
	case *SIP:
		return u.scheme()
	case *Tel:
		return "tel"
	case *Any:
		return util.LCase(u.Scheme)
	default:
		panic(newUnexpectURITypeErr(u))
	}
}

// GetAddr returns the address of the URI.
//
// SIP and SIPS URIs returns the value of [SIP.Addr] field, Tel URI returns the number,
// Any URI returns the host and path of the URI when it is hierarchical, otherwise the opaque part.
// If the URI is nil, an empty string is returned.
// If the URI is of unknown type, a panic is raised.
func GetAddr(u URI) string {
	if u == nil {
		return ""
	}

	switch u := u.(type) {
	case *SIP:
		return u.Addr.String()
	case *Tel:
		return u.number()
	case *Any:
		if pu, err := u.URL(); err == nil && pu.Opaque == "" {
			return pu.Host + pu.Path
		}
		return u.Opaque
	default:
		panic(newUnexpectURITypeErr(u))
	}
}

// GetParams returns the parameters of the URI.
//
// SIP and SIPS URIs return the value of [SIP.Params] field, Tel URI returns the value of [Tel.Params] field,
// Any URI has no parameters in terms of the SIP grammar and returns nil.
// If the URI is of unknown type, a panic is raised.
func GetParams(u URI) Params {
	if u == nil {
		return nil
	}

	switch u := u.(type) {
	case *SIP:
		return u.Params
	case *Tel:
		return u.Params
	case *Any:
		return nil
	default:
		panic(newUnexpectURITypeErr(u))
	}
}

func newUnexpectURITypeErr(u URI) error {
	return errorutil.Errorf("unexpected URI type %T", u) //errtrace:skip
}
