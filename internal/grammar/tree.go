package grammar

import (
	"fmt"
	"strings"

	"github.com/ghettovoice/abnf"
)

// Node is a node of the parse tree.
// Value is the matched slice of the input, Pos is its offset in the input.
type Node = abnf.Node

// Nodes is a list of parse tree nodes.
type Nodes = abnf.Nodes

// Child returns the first direct child of n with the given key.
func Child(n *Node, key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, c := range n.Children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}

// ChildNodes returns all direct children of n with the given key.
func ChildNodes(n *Node, key string) Nodes {
	if n == nil {
		return nil
	}
	var ns Nodes
	for _, c := range n.Children {
		if c.Key == key {
			ns = append(ns, c)
		}
	}
	return ns
}

// Dump renders the tree in an indented form, one node per line.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	fmt.Fprintf(sb, "%s%s [%d] %q\n", strings.Repeat("  ", depth), n.Key, n.Pos, n.Value)
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}

// treeKeys are the rule names kept in the tree returned by [Parse].
var treeKeys = func() map[string]bool {
	keys := []string{
		// message
		"SIP-message", "Request-Line", "Status-Line", "malformed-start-line", "Method", "Request-URI",
		"SIP-Version", "version-name", "major", "minor", "Status-Code", "Reason-Phrase", "message-body",
		"header-name", "extension-header", "header-value",
		// URI
		"SIP-URI", "SIPS-URI", "userinfo", "user", "password", "hostport", "host", "hostname",
		"IPv4address", "IPv6reference", "IPv6address", "port", "uri-parameters", "uri-parameter",
		"pname", "pvalue", "headers", "header", "hname", "hvalue", "absoluteURI", "scheme", "opaque",
		"addr-spec", "name-addr", "display-name", "quoted-string", "comment",
		"telephone-uri", "global-number", "local-number", "global-number-digits", "local-number-digits", "tel-param",
		// header values
		"generic-param", "auth-param", "auth-param-name", "auth-param-value", "auth-scheme", "challenge", "credentials",
		"contact-param", "STAR", "from-spec", "to-spec", "rplyto-spec", "rec-route", "route-param",
		"alert-param", "info", "error-uri",
		"accept-range", "media-range", "media-type", "m-type", "m-subtype", "m-parameter", "encoding", "codings",
		"language", "language-range", "language-tag", "content-coding", "option-tag", "content-length",
		"max-forwards", "priority-value", "callid", "content-disposition", "disp-type", "cseq", "seq-num",
		"SIP-date", "wkday", "day", "month", "year", "hour", "minute", "second", "delta-seconds",
		"malformed-expires", "mime-version", "retry-after", "product", "product-name", "product-version",
		"timestamp", "timestamp-value", "delay",
		"via-parm", "sent-protocol", "protocol-name", "protocol-version", "transport", "sent-by",
		"warning-value", "warn-code", "warn-agent", "warn-text", "subject", "organization",
	}
	m := make(map[string]bool, len(keys)+len(knownHeaders))
	for _, k := range keys {
		m[k] = true
	}
	for _, h := range knownHeaders {
		m[h.name] = true
	}
	return m
}()

// compact copies the tree of n keeping only the nodes named in treeKeys,
// children of a dropped node take its place in the parent.
func compact(n *Node) *Node {
	return &Node{Key: n.Key, Pos: n.Pos, Value: n.Value, Children: compactChildren(n.Children, nil)}
}

func compactChildren(ns, dst Nodes) Nodes {
	for _, c := range ns {
		if treeKeys[c.Key] {
			dst = append(dst, compact(c))
		} else {
			dst = compactChildren(c.Children, dst)
		}
	}
	return dst
}
