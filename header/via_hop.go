package header

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// ViaHop represents a single hop in the Via header.
type ViaHop struct {
	Proto     ProtoInfo
	Transport TransportProto
	Addr      Addr
	Params    Params
}

// String returns the string representation of the ViaHop.
func (hop ViaHop) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	fmt.Fprint(sb, hop.Proto, "/", hop.Transport, " ", hop.Addr)
	hop.Params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the ViaHop.
func (hop ViaHop) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, hop.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(hop.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, hop.String())
			return
		}

		type hideMethods ViaHop
		type ViaHop hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), ViaHop(hop))
	}
}

// Equal compares this ViaHop with another for equality.
func (hop ViaHop) Equal(val any) bool {
	var other ViaHop
	switch v := val.(type) {
	case ViaHop:
		other = v
	case *ViaHop:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return hop.Proto.Equal(other.Proto) &&
		hop.Transport.Equal(other.Transport) &&
		hop.Addr.Equal(other.Addr) &&
		compareParams(hop.Params, other.Params, "maddr", "ttl", "received", "rport", "branch")
}

// IsValid checks whether the ViaHop is syntactically valid.
func (hop ViaHop) IsValid() bool {
	return hop.Proto.IsValid() &&
		hop.Transport.IsValid() &&
		hop.Addr.IsValid() &&
		validateParams(hop.Params)
}

// IsZero checks whether the ViaHop is empty.
func (hop ViaHop) IsZero() bool {
	return hop.Proto.IsZero() &&
		hop.Transport == "" &&
		hop.Addr.IsZero() &&
		len(hop.Params) == 0
}

// Clone returns a copy of the ViaHop.
func (hop ViaHop) Clone() ViaHop {
	hop.Params = hop.Params.Clone()
	return hop
}

func (hop ViaHop) MarshalText() ([]byte, error) {
	return []byte(hop.String()), nil
}

func (hop *ViaHop) UnmarshalText(data []byte) error {
	node, err := grammar.Parse(data, grammar.ViaParm)
	if err != nil {
		*hop = ViaHop{}
		if errors.Is(err, grammar.ErrEmptyInput) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	*hop = buildFromViaParmNode(node)
	return nil
}

// Branch returns the branch parameter.
func (hop ViaHop) Branch() (string, bool) { return hop.Params.Get("branch") }

// Received returns the received parameter as an IP address.
func (hop ViaHop) Received() (netip.Addr, bool) {
	val, ok := hop.Params.Get("received")
	if !ok {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(trimBrackets(val))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

func trimBrackets(s string) string {
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return s[1 : len(s)-1]
	}
	return s
}

// RPort returns the rport parameter, a flag rport gives ok with zero port.
func (hop ViaHop) RPort() (uint16, bool) {
	val, ok := hop.Params.Get("rport")
	if !ok {
		return 0, false
	}
	if val == "" {
		return 0, true
	}
	port, err := strconv.ParseUint(val, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(port), true
}

// MAddr returns the maddr parameter.
func (hop ViaHop) MAddr() (string, bool) { return hop.Params.Get("maddr") }

// TTL returns the ttl parameter.
func (hop ViaHop) TTL() (Number, bool) {
	val, ok := hop.Params.Get("ttl")
	if !ok {
		return Number{}, false
	}
	n, err := types.ParseNumber(val)
	return n, err == nil
}

func buildFromViaParmNode(node *grammar.Node) ViaHop {
	return ViaHop{
		Proto: ProtoInfo{
			Name:    grammar.MustGetNode(node, "protocol-name").String(),
			Version: grammar.MustGetNode(node, "protocol-version").String(),
		},
		Transport: TransportProto(grammar.MustGetNode(node, "transport").String()),
		Addr:      types.AddrFromNode(grammar.MustGetNode(node, "sent-by")),
		Params:    buildParams(node.Children[2:]),
	}
}

func buildFromViaNodes(nodes grammar.Nodes) Via {
	hdr := make(Via, len(nodes))
	for i, n := range nodes {
		hdr[i] = buildFromViaParmNode(n)
	}
	return hdr
}

func cloneViaHop(hop ViaHop) ViaHop { return hop.Clone() }

func equalViaHop(a, b ViaHop) bool { return a.Equal(b) }
