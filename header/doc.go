// Package header provides typed representations of SIP message headers defined by RFC 3261.
//
// Every header type implements [Header]: rendering, cloning, validation and equality.
// A header that is not recognized, or a known header whose value does not match its grammar,
// is kept as [Any], a name with the raw text of every occurrence.
//
// # Parsing
//
// Use [Parse] to parse a single header line:
//
//	hdr, err := header.Parse("From: <sip:alice@example.com>;tag=1234")
//
// Compact names are accepted and canonicalized, see [CanonicName] and [CompactName].
//
// # Lists and Combining
//
// Most headers are lists. Repeated occurrences of a list header are merged with [Combine],
// singular ones (see [IsListType]) may appear only once in a message.
// Combining two structured values of the same type concatenates them, any other pair
// gives [Any] holding the raw values of both.
//
// List headers implement [Splitter], a message renders them one line per member.
// Server and User-Agent are the exception: their values are separated by SP and always
// render on a single line.
//
// # Parameters
//
// Parameters are kept in the wire order as [Params], values are stored as written,
// so quoted strings keep their quotes. Parameter comparison follows RFC 3261 Section 19.1.4:
//
//   - parameters present in both headers must have matching values
//   - other parameters present in only one header are ignored
//   - special parameters (per header type) must be present in both or neither
//   - unquoted values are compared case-insensitively
//
// # Custom Parsers
//
// Extension headers can get their own types with [RegisterParser]:
//
//	func init() {
//		header.RegisterParser("x-custom", func(name string, value []byte) header.Header {
//			return &MyCustomHeader{Name: name, Value: string(value)}
//		})
//	}
//
// If a custom parser returns nil, the header is parsed as [Any].
//
// # JSON
//
// [ToJSON] and [FromJSON] encode a header as
//
//	{"name":"<CanonicName>","values":["<value of line 1>", ...]}
//
// [FromJSON] re-parses every value, so only syntactically valid headers are decoded.
package header
