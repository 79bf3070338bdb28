// Package sipcodec parses and renders SIP messages (RFC 3261).
//
// The codec turns the wire text of a message into a structured [Message] and renders it back.
// It does no network I/O and keeps no transaction state, the body is an opaque octet sequence.
//
// # Parsing
//
// [ParseMessage] parses a full message. The input goes through the following stages:
//
//   - leading CRLF pairs before the start-line are dropped (RFC 3261 Section 7.5);
//   - folded header lines are joined with [FoldLWS];
//   - the grammar matches the whole input, a mismatch gives [*SyntaxError] with the line and column;
//   - repeated headers are combined into [Headers];
//   - the message is validated, a failure gives [*ParsedError] with a status code
//     and a reason phrase ready to be sent back in a response.
//
// Example:
//
//	msg, err := sipcodec.ParseMessage("INVITE sip:bob@biloxi.com SIP/2.0\r\n...")
//	if err != nil {
//		var perr *sipcodec.ParsedError
//		if errors.As(err, &perr) {
//			// reply with perr.StatusCode and perr.ReasonPhrase
//		}
//		return err
//	}
//	req := msg.(*sipcodec.Request)
//
// [Parse] and [ParseRule] start from other grammar rules, such as a single header line or a URI.
// Validation is applied only to full messages.
//
// # Headers
//
// Headers are keyed by canonical name in order of their first appearance.
// Repeated list headers (Via, Contact, Route and so on, every unknown header included) are
// merged into one value, a repeated singular header (CSeq, To, Content-Length and so on) is an error.
// A header whose value does not match its grammar is kept as [header.Any].
//
// # Rendering
//
// Every message, header and URI renders back to wire text with Render and RenderTo.
// List headers render one line per member, User-Agent and Server render their products on one line.
// Parsing the rendered text gives a message equal to the original one.
package sipcodec

//go:generate go tool errtrace -w .
