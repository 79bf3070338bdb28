package header

import (
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipcodec/internal/grammar"
)

// AuthenticationInfo represents the Authentication-Info header field.
// The Authentication-Info header field provides for mutual authentication with HTTP Digest.
// Param values keep their quotes, use [AuthenticationInfo.Param] to get an unquoted one.
type AuthenticationInfo struct {
	Params Params
}

// CanonicName returns the canonical name of the header.
func (*AuthenticationInfo) CanonicName() Name { return "Authentication-Info" }

// CompactName returns the compact name of the header.
func (*AuthenticationInfo) CompactName() Name { return "Authentication-Info" }

// RenderTo writes the header to the provided writer.
func (hdr *AuthenticationInfo) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}
	return errtrace.Wrap2(renderHeaderTo(w, hdr, opts))
}

// Render returns the string representation of the header.
func (hdr *AuthenticationInfo) Render(opts *RenderOptions) string {
	if hdr == nil {
		return ""
	}
	return renderHeader(hdr, opts)
}

func (hdr *AuthenticationInfo) String() string { return hdr.RenderValue() }

// Format implements fmt.Formatter for custom formatting of the header.
func (hdr *AuthenticationInfo) Format(f fmt.State, verb rune) {
	type hideMethods AuthenticationInfo
	type AuthenticationInfo hideMethods
	formatHeader(f, verb, hdr, (*AuthenticationInfo)(hdr))
}

func (hdr *AuthenticationInfo) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *AuthenticationInfo) UnmarshalJSON(data []byte) error {
	h, err := headerFromJSON[*AuthenticationInfo](data)
	if h == nil {
		*hdr = AuthenticationInfo{}
	} else {
		*hdr = *h
	}
	return errtrace.Wrap(err)
}

// RenderValue returns the header value without the name prefix.
func (hdr *AuthenticationInfo) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return strings.TrimPrefix(renderAuthValue("", hdr.Params), " ")
}

// Param returns the unquoted value of the auth-param.
func (hdr *AuthenticationInfo) Param(name string) (string, bool) {
	if hdr == nil {
		return "", false
	}
	v, ok := hdr.Params.Get(name)
	return grammar.Unquote(v), ok
}

// Clone returns a copy of the header.
func (hdr *AuthenticationInfo) Clone() Header {
	if hdr == nil {
		return hdr
	}
	return &AuthenticationInfo{Params: hdr.Params.Clone()}
}

// Equal compares this header with another for equality.
func (hdr *AuthenticationInfo) Equal(val any) bool {
	var other *AuthenticationInfo
	switch v := val.(type) {
	case AuthenticationInfo:
		other = &v
	case *AuthenticationInfo:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return equalAuthParams(hdr.Params, other.Params)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *AuthenticationInfo) IsValid() bool {
	return hdr != nil && len(hdr.Params) > 0 && validateAuthParams(hdr.Params)
}

func buildFromAuthenticationInfoNodes(nodes grammar.Nodes) *AuthenticationInfo {
	return &AuthenticationInfo{Params: buildAuthParams(nodes)}
}
