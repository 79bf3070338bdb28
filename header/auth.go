package header

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/sipcodec/internal/grammar"
	"github.com/ghettovoice/sipcodec/internal/util"
)

// Credentials holds the authentication scheme and auth-params of an Authorization
// or Proxy-Authorization header value.
// Param values are kept as they appear on the wire, quoted strings keep their quotes.
type Credentials struct {
	Scheme string
	Params Params
}

// String returns the string representation of the Credentials.
func (crd Credentials) String() string { return renderAuthValue(crd.Scheme, crd.Params) }

// Format implements fmt.Formatter for custom formatting of the Credentials.
func (crd Credentials) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, crd.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(crd.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, crd.String())
			return
		}

		type hideMethods Credentials
		type Credentials hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Credentials(crd))
	}
}

// Param returns the unquoted value of the auth-param.
func (crd Credentials) Param(name string) (string, bool) {
	v, ok := crd.Params.Get(name)
	return grammar.Unquote(v), ok
}

// Equal compares this Credentials with another for equality.
func (crd Credentials) Equal(val any) bool {
	var other Credentials
	switch v := val.(type) {
	case Credentials:
		other = v
	case *Credentials:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(crd.Scheme, other.Scheme) && equalAuthParams(crd.Params, other.Params)
}

// IsValid checks whether the Credentials is syntactically valid.
func (crd Credentials) IsValid() bool {
	return grammar.IsToken(crd.Scheme) && validateAuthParams(crd.Params)
}

// Clone returns a copy of the Credentials.
func (crd Credentials) Clone() Credentials {
	crd.Params = crd.Params.Clone()
	return crd
}

// Challenge holds the authentication scheme and auth-params of a WWW-Authenticate
// or Proxy-Authenticate header value.
type Challenge struct {
	Scheme string
	Params Params
}

// String returns the string representation of the Challenge.
func (cln Challenge) String() string { return renderAuthValue(cln.Scheme, cln.Params) }

// Format implements fmt.Formatter for custom formatting of the Challenge.
func (cln Challenge) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, cln.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(cln.String()))
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, cln.String())
			return
		}

		type hideMethods Challenge
		type Challenge hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Challenge(cln))
	}
}

// Param returns the unquoted value of the auth-param.
func (cln Challenge) Param(name string) (string, bool) {
	v, ok := cln.Params.Get(name)
	return grammar.Unquote(v), ok
}

// Equal compares this Challenge with another for equality.
func (cln Challenge) Equal(val any) bool {
	var other Challenge
	switch v := val.(type) {
	case Challenge:
		other = v
	case *Challenge:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(cln.Scheme, other.Scheme) && equalAuthParams(cln.Params, other.Params)
}

// IsValid checks whether the Challenge is syntactically valid.
func (cln Challenge) IsValid() bool {
	return grammar.IsToken(cln.Scheme) && validateAuthParams(cln.Params)
}

// Clone returns a copy of the Challenge.
func (cln Challenge) Clone() Challenge {
	cln.Params = cln.Params.Clone()
	return cln
}

func renderAuthValue(scheme string, params Params) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(scheme)
	for i, p := range params {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString("=")
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// equalAuthParams requires the same set of auth-params.
// Quoted values are compared exactly, tokens case-insensitively.
func equalAuthParams(params1, params2 Params) bool {
	if len(params1) != len(params2) {
		return false
	}
	for _, p := range params1 {
		v, ok := params2.Get(p.Name)
		if !ok {
			return false
		}
		if grammar.IsQuoted(p.Value) || grammar.IsQuoted(v) {
			if p.Value != v {
				return false
			}
		} else if !util.EqFold(p.Value, v) {
			return false
		}
	}
	return true
}

func validateAuthParams(params Params) bool {
	for _, p := range params {
		if !grammar.IsToken(p.Name) || !(grammar.IsToken(p.Value) || grammar.IsQuoted(p.Value)) {
			return false
		}
	}
	return true
}

// buildAuthParams collects the auth-param nodes.
func buildAuthParams(nodes grammar.Nodes) Params {
	var params Params
	for _, n := range nodes {
		if n.Key != "auth-param" {
			continue
		}
		params = params.Add(
			grammar.MustGetNode(n, "auth-param-name").String(),
			grammar.MustGetNode(n, "auth-param-value").String(),
		)
	}
	return params
}

func buildFromCredentialsNode(node *grammar.Node) Credentials {
	return Credentials{
		Scheme: grammar.MustGetNode(node, "auth-scheme").String(),
		Params: buildAuthParams(node.Children[1:]),
	}
}

func buildFromChallengeNode(node *grammar.Node) Challenge {
	return Challenge{
		Scheme: grammar.MustGetNode(node, "auth-scheme").String(),
		Params: buildAuthParams(node.Children[1:]),
	}
}

func cloneCredentials(crd Credentials) Credentials { return crd.Clone() }

func equalCredentials(a, b Credentials) bool { return a.Equal(b) }

func cloneChallenge(cln Challenge) Challenge { return cln.Clone() }

func equalChallenge(a, b Challenge) bool { return a.Equal(b) }
