package types

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Addr is a container for host and optional port (the hostport rule).
type Addr struct {
	host    string
	ip      net.IP
	port    Number
	hasPort bool
}

func newAddr(host string) Addr {
	host = strings.Trim(host, "[]")
	ip := net.ParseIP(host)
	if v := ip.To4(); v != nil {
		ip = v
	}
	return Addr{host: host, ip: ip}
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr { return newAddr(host) }

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port uint16) Addr {
	addr := newAddr(host)
	addr.port = NewNumber(port)
	addr.hasPort = true
	return addr
}

// HostNumPort is like [HostPort] but accepts a port of any width as it was seen on the wire.
func HostNumPort(host string, port Number) Addr {
	addr := newAddr(host)
	addr.port = port
	addr.hasPort = true
	return addr
}

// ParseAddr parses a "host:port" string into an [Addr].
func ParseAddr[T ~string | ~[]byte](s T) (Addr, error) {
	node, err := grammar.ParseHostport(s)
	if err != nil {
		return Addr{}, errtrace.Wrap(err)
	}
	return AddrFromNode(node), nil
}

// AddrFromNode builds an [Addr] from a hostport node.
func AddrFromNode(node *grammar.Node) Addr {
	host := grammar.MustGetNode(node, "host").String()
	if portNode, ok := grammar.Child(node, "port"); ok {
		return HostNumPort(host, MustParseNumber(portNode.Value))
	}
	return Host(host)
}

// Host returns the hostname portion of the address without IPv6 brackets.
func (addr Addr) Host() string { return addr.host }

// IP returns the parsed IP representation when the host is an IP literal, otherwise nil.
func (addr Addr) IP() net.IP { return addr.ip }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (Number, bool) { return addr.port, addr.hasPort }

// String formats the address as host[:port], adding brackets for IPv6 literals.
func (addr Addr) String() string {
	host := addr.hostString()
	if !addr.hasPort {
		return host
	}
	return host + ":" + addr.port.String()
}

func (addr Addr) hostString() string {
	if strings.Contains(addr.host, ":") {
		return "[" + addr.host + "]"
	}
	return addr.host
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (addr Addr) Format(f fmt.State, verb rune) {
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

		type hideMethods Addr
		type Addr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(addr))
		return
	}
}

// Equal reports whether the address equals the provided value, accepting Addr and *Addr.
// Hosts are compared case-insensitively, IP literals by value.
func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	var hostMatch bool
	switch {
	case addr.ip == nil && other.ip == nil:
		hostMatch = util.EqFold(addr.host, other.host)
	case addr.ip != nil && other.ip != nil:
		hostMatch = addr.ip.Equal(other.ip)
	default:
		return false
	}

	return hostMatch && addr.port.Equal(other.port) && addr.hasPort == other.hasPort
}

// IsValid reports whether the address contains a syntactically valid host component.
func (addr Addr) IsValid() bool { return grammar.IsHost(addr.hostString()) }

// IsZero reports whether the address has zero host and port information.
func (addr Addr) IsZero() bool { return addr.host == "" && !addr.hasPort }

// MarshalText encodes the address into its textual representation.
func (addr Addr) MarshalText() (text []byte, err error) {
	return []byte(addr.String()), nil
}

// UnmarshalText parses a textual representation of an address into the receiver.
func (addr *Addr) UnmarshalText(text []byte) error {
	var err error
	*addr, err = ParseAddr(text)
	if errors.Is(err, grammar.ErrEmptyInput) {
		return nil
	}
	return errtrace.Wrap(err)
}
