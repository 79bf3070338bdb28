package grammar

import (
	"github.com/ghettovoice/abnf"
)

func (r *ruleSet) initMessage() {
	sp := r.char(' ')
	// SIP-Version = "SIP" "/" 1*DIGIT "." 1*DIGIT
	version := abnf.Concat(
		"SIP-Version",
		abnf.Concat("version-name", r.lit("SIP")),
		r.char('/'),
		r.digitsAs("major"),
		r.char('.'),
		r.digitsAs("minor"),
	)
	// Request-Line = Method SP Request-URI SP SIP-Version
	r.requestLine = abnf.Concat(
		"Request-Line",
		r.method,
		sp,
		r.requestURI(abnf.Concat("SP-SIP-Version", sp, version)),
	)
	// Status-Line = SIP-Version SP Status-Code SP Reason-Phrase
	r.statusLine = abnf.Concat(
		"Status-Line",
		version,
		sp,
		r.digitsAs("Status-Code"),
		sp,
		abnf.Concat("Reason-Phrase", abnf.Repeat0Inf("*line-char", lineChars.op("line-char"))),
	)

	// SIP-message = start-line *message-header CRLF [ message-body ],
	// any start line other than Request-Line and Status-Line is taken as malformed-start-line
	r.message = abnf.Concat(
		"SIP-message",
		abnf.AltFirst(
			"start-line",
			abnf.Concat("Request-Line-CRLF", r.requestLine, r.crlf),
			abnf.Concat("Status-Line-CRLF", r.statusLine, r.crlf),
			abnf.Concat("malformed-start-line-CRLF", r.run("malformed-start-line", "start-line", lineChars), r.crlf),
		),
		abnf.Repeat0Inf("*message-header", abnf.Concat("message-header-CRLF", r.headerLine, r.crlf)),
		r.crlf,
		rest("message-body"),
	)
}

func (r *ruleSet) initStartRules() {
	r.start = map[Rule]abnf.Operator{
		SIPMessage:    r.message,
		RequestLine:   r.line(r.requestLine),
		StatusLine:    r.line(r.statusLine),
		MessageHeader: r.line(r.headerLine),
		RequestURI:    r.requestURI(eoi),
		SIPURI:        r.sipURI,
		SIPSURI:       r.sipsURI,
		AbsoluteURI:   r.absoluteURI,
		TelURI:        r.telURI,
		NameAddr:      r.nameAddr,
		Hostport:      r.hostport,
		Encoding:      r.encoding,
		MediaRange:    r.mediaRange,
		Language:      r.language,
		ViaParm:       r.viaParm,
		ContactParam:  r.contactParam,
		WarningValue:  r.warningValue,
	}
}
