package grammar

import (
	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"
)

func (r *ruleSet) initCore() {
	core := abnf_core.Operators()

	// the core CRLF accepts a bare LF, SIP lines end with CR LF only
	crlf := abnf.LiteralCS("CRLF", []byte("\r\n"))
	r.crlf = r.expect("CRLF", crlf)
	r.wsp = core.WSP
	// LWS = [*WSP CRLF] 1*WSP, the folded form is taken only when WSP follows the CRLF
	r.lws = abnf.Concat(
		"LWS",
		abnf.Optional("[fold]", abnf.Concat("fold", abnf.Repeat0Inf("*WSP", r.wsp), crlf)),
		abnf.Repeat1Inf("1*WSP", r.wsp),
	)
	// SWS = [LWS]
	r.sws = abnf.Concat("SWS", abnf.Optional("[LWS]", r.lws))
	// HCOLON = *( SP / HTAB ) ":" SWS
	r.hcolon = abnf.Concat("HCOLON", abnf.Repeat0Inf("*WSP", r.wsp), r.char(':'), r.sws)

	r.semi = r.sep("SEMI", ';')
	r.comma = r.sep("COMMA", ',')
	r.equal = r.sep("EQUAL", '=')
	r.slash = r.sep("SLASH", '/')
	r.colon = r.sep("COLON", ':')
	// LAQUOT = SWS "<", RAQUOT = ">" SWS
	r.laquot = abnf.Concat("LAQUOT", r.sws, r.char('<'))
	r.raquot = abnf.Concat("RAQUOT", r.char('>'), r.sws)

	r.token = r.tokenAs("token")
	r.word = r.run("word", "word", wordChars)
	r.digits = r.digitsAs("digits")
	r.method = r.run("Method", "Method", tokenChars)
	r.deltaSeconds = r.digitsAs("delta-seconds")

	// quoted-pair = "\" (%x00-09 / %x0B-0C / %x0E-7F), UTF8 octets are accepted too
	quotedPair := abnf.Concat("quoted-pair", abnf.LiteralCS(`\`, []byte(`\`)), lineChars.op("quoted-char"))

	// quoted-string = SWS DQUOTE *(qdtext / quoted-pair ) DQUOTE, the node starts at DQUOTE
	r.qsNode = abnf.Concat(
		"quoted-string",
		r.char('"'),
		abnf.Repeat0Inf("*qdtext", abnf.AltFirst("qdtext", qdtextChars.op("qdtext-char"), quotedPair, r.lws)),
		r.char('"'),
	)
	r.quotedString = abnf.Concat("SWS-quoted-string", r.sws, r.qsNode)

	// comment = LPAREN *(ctext / quoted-pair / comment) RPAREN, the surrounding SWS is not part of the node
	var comment abnf.Operator
	nested := func(in []byte, pos uint, ns *abnf.Nodes) error {
		return comment(in, pos, ns) //errtrace:skip
	}
	comment = abnf.Concat(
		"comment",
		r.char('('),
		abnf.Repeat0Inf("*ctext", abnf.AltFirst("ctext", ctextChars.op("ctext-char"), quotedPair, nested, r.lws)),
		r.char(')'),
	)
	r.comment = abnf.Concat("SWS-comment", r.sws, comment)
}

// textValue matches an optional TEXT-UTF8-TRIM up to the end of the line.
// Leading whitespace is skipped, inner LWS is kept and trailing whitespace is not part of the node.
func (r *ruleSet) textValue(key string) abnf.Operator {
	text := textChars.op("TEXT-UTF8char")
	return abnf.Concat(
		"text-value",
		abnf.Repeat0Inf("*LWS", r.lws),
		abnf.Concat(key, abnf.Optional("[text]", abnf.Concat(
			"text",
			text,
			abnf.Repeat0Inf("*text", abnf.Concat(
				"LWS-text",
				abnf.Optional("[LWS]", abnf.Concat("1*LWS", abnf.Repeat1Inf("1*LWS", r.lws))),
				text,
			)),
		))),
	)
}

// genericParam matches generic-param = token [ EQUAL gen-value ], gen-value = token / host / quoted-string.
// A dangling "=" is not part of the parameter.
func (r *ruleSet) initGenericParam() {
	r.genericParam = abnf.Concat(
		"generic-param",
		r.tokenAs("pname"),
		abnf.Optional("[gen-value]", abnf.Concat("EQUAL-gen-value", r.equal, r.genValue())),
	)
}

func (r *ruleSet) genValue() abnf.Operator {
	return abnf.Concat("pvalue", abnf.AltFirst(
		"gen-value",
		r.quotedString,
		abnf.Concat("host", r.ipv6Reference()),
		r.tokenAs("gen-token"),
	))
}

// authParam matches auth-param = auth-param-name EQUAL ( token / quoted-string ).
func (r *ruleSet) authParam() abnf.Operator {
	return abnf.Concat(
		"auth-param",
		r.tokenAs("auth-param-name"),
		r.equal,
		abnf.Concat("auth-param-value", abnf.AltFirst("auth-value", r.quotedString, r.token)),
	)
}

// authValue matches challenge and credentials = auth-scheme [ LWS auth-param *(COMMA auth-param) ].
func (r *ruleSet) authValue(key string) abnf.Operator {
	return abnf.Concat(
		key,
		r.tokenAs("auth-scheme"),
		abnf.Optional("[auth-params]", abnf.Concat("LWS-auth-params", r.lws, r.list(r.authParam()))),
	)
}
