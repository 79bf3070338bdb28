package header

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
	"github.com/ghettovoice/sipcodec/uri"
)

// InfoAddr represents a single element in Alert-Info, Call-Info, Error-Info headers.
type InfoAddr struct {
	URI    uri.URI
	Params Params
}

// String returns the string representation of the InfoAddr.
func (addr InfoAddr) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString("<")
	if addr.URI != nil {
		addr.URI.RenderTo(sb, nil) //nolint:errcheck
	}
	sb.WriteString(">")
	addr.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the InfoAddr.
func (addr InfoAddr) Format(f fmt.State, verb rune) {
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

		type hideMethods InfoAddr
		type InfoAddr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), InfoAddr(addr))
		return
	}
}

// Equal compares this InfoAddr with another for equality.
func (addr InfoAddr) Equal(val any) bool {
	var other InfoAddr
	switch v := val.(type) {
	case InfoAddr:
		other = v
	case *InfoAddr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return types.IsEqual(addr.URI, other.URI) && compareParams(addr.Params, other.Params, "purpose")
}

// IsValid checks whether the InfoAddr is syntactically valid.
func (addr InfoAddr) IsValid() bool {
	return types.IsValid(addr.URI) && validateParams(addr.Params)
}

// IsZero checks whether the InfoAddr is empty.
func (addr InfoAddr) IsZero() bool { return addr.URI == nil && len(addr.Params) == 0 }

// Clone returns a copy of the InfoAddr.
func (addr InfoAddr) Clone() InfoAddr {
	addr.URI = types.Clone[uri.URI](addr.URI)
	addr.Params = addr.Params.Clone()
	return addr
}

func buildFromInfoNodes(nodes grammar.Nodes) []InfoAddr {
	addrs := make([]InfoAddr, len(nodes))
	for i, n := range nodes {
		addrs[i] = InfoAddr{
			URI:    uri.FromNode(grammar.MustGetNode(n, "addr-spec")),
			Params: buildParams(n.Children[1:]),
		}
	}
	return addrs
}

func cloneInfoAddr(addr InfoAddr) InfoAddr { return addr.Clone() }

func equalInfoAddr(a, b InfoAddr) bool { return a.Equal(b) }
