package header

import (
	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// Product is a single server-val of the Server and User-Agent headers,
// either a product token with an optional version or a comment.
// Comment is kept without the enclosing parentheses.
type Product struct {
	Name    string
	Version string
	Comment string
}

// IsComment reports whether the value is a comment.
func (p Product) IsComment() bool { return p.Name == "" && p.Comment != "" }

func (p Product) String() string {
	switch {
	case p.IsComment():
		return "(" + p.Comment + ")"
	case p.Version != "":
		return p.Name + "/" + p.Version
	default:
		return p.Name
	}
}

func (p Product) IsValid() bool {
	if p.IsComment() {
		return true
	}
	return grammar.IsToken(p.Name) && (p.Version == "" || grammar.IsToken(p.Version))
}

func equalProduct(a, b Product) bool { return a == b }

func cloneProduct(p Product) Product { return p }

func buildFromProductNodes(nodes grammar.Nodes) []Product {
	prods := make([]Product, len(nodes))
	for i, n := range nodes {
		if n.Key == "comment" {
			prods[i] = Product{Comment: trimComment(n.String())}
			continue
		}
		prods[i].Name = grammar.MustGetNode(n, "product-name").String()
		if v, ok := grammar.Child(n, "product-version"); ok {
			prods[i].Version = v.String()
		}
	}
	return prods
}
