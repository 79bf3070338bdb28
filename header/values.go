package header

import (
	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// ValueFromNode builds a header value element from a component node:
// name-addr and contact-param give [NameAddr], via-parm gives [ViaHop],
// warning-value gives [WarningEntry], media-range gives [MIMEType],
// encoding gives [EncodingRange], language gives [LanguageRange] and hostport gives [Addr].
// The second result is false for any other node.
func ValueFromNode(node *grammar.Node) (any, bool) {
	if node == nil {
		return nil, false
	}
	switch node.Key {
	case "name-addr":
		return buildFromNameAddrNode(&grammar.Node{
			Key:      "contact-param",
			Value:    node.Value,
			Pos:      node.Pos,
			Children: grammar.Nodes{node},
		}), true
	case "contact-param":
		return buildFromNameAddrNode(node), true
	case "via-parm":
		return buildFromViaParmNode(node), true
	case "warning-value":
		return buildFromWarningValueNode(node), true
	case "media-range":
		return buildFromMIMETypeNode(node), true
	case "encoding":
		return EncodingRange{
			Encoding: grammar.MustGetNode(node, "codings").String(),
			Params:   buildParams(node.Children[1:]),
		}, true
	case "language":
		return LanguageRange{
			Lang:   grammar.MustGetNode(node, "language-range").String(),
			Params: buildParams(node.Children[1:]),
		}, true
	case "hostport":
		return types.AddrFromNode(node), true
	default:
		return nil, false
	}
}
