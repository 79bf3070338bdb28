// Package uri implements the URI forms a SIP message carries (RFC 3261 Section 19.1).
//
// [SIP] holds sip: and sips: URIs split into user info, host, parameters and headers.
// Parameters and headers keep their wire order and are stored unescaped,
// rendering escapes them again.
//
// [Tel] holds tel: URIs (RFC 3966) split into the number and its parameters,
// a tel absoluteURI that does not match RFC 3966 stays [Any].
//
// Every other absoluteURI (mailto:, http:, urn:) is kept as [Any],
// a scheme and an opaque remainder that renders back byte for byte.
// [Any.URL] gives a [net/url.URL] view when a hierarchical access is needed.
//
//	u, err := uri.Parse("sip:alice@atlanta.com;transport=tcp")
//	if err != nil {
//		return err
//	}
//	tp, _ := u.(*uri.SIP).Transport() // "tcp"
//
// [SIP.Equal] compares URIs by the rules of RFC 3261 Section 19.1.4,
// [Tel.Equal] by the rules of RFC 3966 Section 4.
package uri
