package header

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
	"github.com/ghettovoice/sipcodec/uri"
)

// DefaultExpires is the value in seconds a malformed Expires header or expires parameter is replaced with.
const DefaultExpires = 3600

// NameAddr represents a single element in From, To, Contact, Reply-To, Route and Record-Route headers.
// DisplayName is kept unquoted, Bracketed is set when the address was written as name-addr.
type NameAddr struct {
	DisplayName string
	URI         uri.URI
	Params      Params
	Bracketed   bool
}

// String returns the string representation of the NameAddr.
// The URI is put into angle brackets when there is a display name, the Bracketed flag is set
// or the URI would be ambiguous without them.
func (addr NameAddr) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	var u string
	if addr.URI != nil {
		u = addr.URI.Render(nil)
	}
	if addr.DisplayName != "" || addr.Bracketed || u == "" || strings.ContainsAny(u, ",;?") {
		if addr.DisplayName != "" {
			sb.WriteString(renderDisplayName(addr.DisplayName))
			sb.WriteString(" ")
		}
		sb.WriteString("<")
		sb.WriteString(u)
		sb.WriteString(">")
	} else {
		sb.WriteString(u)
	}
	addr.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func renderDisplayName(name string) string {
	if isTokenSeq(name) {
		return name
	}
	return grammar.Quote(name)
}

// Format implements fmt.Formatter for custom formatting of the NameAddr.
func (addr NameAddr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, addr.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, addr.String())
			return
		}

		type hideMethods NameAddr
		type NameAddr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), NameAddr(addr))
		return
	}
}

// Equal compares this NameAddr with another for equality.
// The bracket flag is presentation only and is not compared.
func (addr NameAddr) Equal(val any) bool {
	var other NameAddr
	switch v := val.(type) {
	case NameAddr:
		other = v
	case *NameAddr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return addr.DisplayName == other.DisplayName &&
		types.IsEqual(addr.URI, other.URI) &&
		compareParams(addr.Params, other.Params, "tag", "q", "expires")
}

// IsValid checks whether the NameAddr is syntactically valid.
func (addr NameAddr) IsValid() bool {
	return types.IsValid(addr.URI) && validateParams(addr.Params)
}

// IsZero checks whether the NameAddr is empty.
func (addr NameAddr) IsZero() bool {
	return addr.DisplayName == "" && addr.URI == nil && len(addr.Params) == 0
}

// Clone returns a copy of the NameAddr.
func (addr NameAddr) Clone() NameAddr {
	addr.URI = types.Clone[uri.URI](addr.URI)
	addr.Params = addr.Params.Clone()
	return addr
}

func (addr NameAddr) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

func (addr *NameAddr) UnmarshalText(data []byte) error {
	node, err := grammar.Parse(data, grammar.ContactParam)
	if err != nil {
		*addr = NameAddr{}
		if errors.Is(err, grammar.ErrEmptyInput) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	*addr = buildFromNameAddrNode(node)
	return nil
}

// Tag returns the unquoted tag parameter.
func (addr NameAddr) Tag() (string, bool) {
	v, ok := addr.Params.Get("tag")
	return grammar.Unquote(v), ok
}

// Expires returns the expires parameter of a Contact address.
// A value that is not delta-seconds is taken as [DefaultExpires].
func (addr NameAddr) Expires() (Number, bool) {
	v, ok := addr.Params.Get("expires")
	if !ok {
		return Number{}, false
	}
	n, err := types.ParseNumber(grammar.Unquote(v))
	if err != nil {
		return Num(DefaultExpires), true
	}
	return n, true
}

// Q returns the q parameter of a Contact address.
func (addr NameAddr) Q() (float64, bool) {
	v, ok := addr.Params.Get("q")
	if !ok {
		return 0, false
	}
	q, err := strconv.ParseFloat(v, 64)
	return q, err == nil
}

// buildFromNameAddrNode builds an address from a node holding a name-addr or addr-spec child followed by params.
func buildFromNameAddrNode(node *grammar.Node) NameAddr {
	addr := NameAddr{
		URI:    uri.FromNode(grammar.MustGetNode(node, "addr-spec")),
		Params: buildParams(node.Children[1:]),
	}
	if na, ok := grammar.Child(node, "name-addr"); ok {
		addr.Bracketed = true
		if dn, ok := grammar.Child(na, "display-name"); ok {
			if qs, ok := grammar.Child(dn, "quoted-string"); ok {
				addr.DisplayName = grammar.Unquote(qs.String())
			} else {
				addr.DisplayName = dn.String()
			}
		}
	}
	return addr
}

func buildFromNameAddrNodes(nodes grammar.Nodes) []NameAddr {
	addrs := make([]NameAddr, len(nodes))
	for i, n := range nodes {
		addrs[i] = buildFromNameAddrNode(n)
	}
	return addrs
}

func cloneNameAddr(addr NameAddr) NameAddr { return addr.Clone() }

func equalNameAddr(a, b NameAddr) bool { return a.Equal(b) }
