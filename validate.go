package sipcodec

import (
	"github.com/ghettovoice/sipcodec/header"
	"github.com/ghettovoice/sipcodec/internal/errorutil"
	"github.com/ghettovoice/sipcodec/internal/types"
)

// reqMandatoryHdrs lists the headers every request must carry, in the order they are checked.
var reqMandatoryHdrs = []HeaderName{"To", "From", "CSeq", "Call-ID", "Max-Forwards", "Via"}

// lateCheckedHdrs are the headers that must be structured when present in any message.
var lateCheckedHdrs = []HeaderName{"Content-Length", "Contact"}

// validate checks a built message against RFC 3261 and returns the first violation found.
func validate(res buildResult) *ParsedError {
	msg := res.msg
	if res.dupErr != nil {
		return newParsedError(msg, 400, "Multiple "+string(res.dupName)+" values", res.dupErr)
	}

	var proto Version
	switch m := msg.(type) {
	case *UnknownMessage:
		return newParsedError(msg, 400, "Malformed start-line", nil)
	case *Request:
		proto = m.Proto
	case *Response:
		proto = m.Proto
	}
	// only the exact "SIP/2.0" text is supported, neither "sip/2.0" nor "SIP/02.00" is
	if proto.String() != types.SIP20.String() {
		return newParsedError(msg, 505, "Version Not Supported", nil)
	}

	hdrs := msg.MessageHeaders()
	if req, ok := msg.(*Request); ok {
		for _, name := range reqMandatoryHdrs {
			hdr, ok := hdrs.Get(name)
			if !ok {
				return newParsedError(msg, 400, "Missing "+string(name)+" header", nil)
			}
			if header.IsExtension(hdr) {
				return malformedHeaderErr(msg, hdr)
			}
		}
		if cseq, ok := hdrs.CSeq(); ok && cseq.Method != req.Method {
			return newParsedError(msg, 400, "CSeq Method does not match Request Method", nil)
		}
	}

	if cseq, ok := hdrs.CSeq(); ok && !cseq.SeqNum.FitsUint32() {
		return newParsedError(msg, 400, "Invalid CSeq sequence number", nil)
	}

	for _, name := range lateCheckedHdrs {
		if hdr, ok := hdrs.Get(name); ok && header.IsExtension(hdr) {
			return malformedHeaderErr(msg, hdr)
		}
	}
	return nil
}

func malformedHeaderErr(msg Message, hdr Header) *ParsedError {
	name := hdr.CanonicName()
	return newParsedError(msg, 400, "Malformed "+string(name)+" header",
		errorutil.Errorf("%s value %q does not match its grammar", name, hdr.RenderValue()))
}
