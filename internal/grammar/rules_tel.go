package grammar

import (
	"github.com/ghettovoice/abnf"
)

// initTel builds the tel URI rules of RFC 3966 Section 3.
func (r *ruleSet) initTel() {
	digit := digitClass.op("DIGIT")
	phoneDigit := phoneDigitChars.op("phonedigit")
	phoneHex := phoneHexChars.op("phonedigit-hex")

	// global-number-digits = "+" *phonedigit DIGIT *phonedigit
	r.globalNumberDigits = abnf.Concat(
		"global-number-digits",
		r.char('+'),
		abnf.Repeat0Inf("*phonedigit", phoneDigit),
		digit,
		abnf.Repeat0Inf("*phonedigit", phoneDigit),
	)
	// local-number-digits = *phonedigit-hex (HEXDIG / "*" / "#") *phonedigit-hex
	r.localNumberDigits = abnf.Concat(
		"local-number-digits",
		abnf.Repeat0Inf("*phonedigit-hex", phoneHex),
		newCharClass(hexChars, "*#").op("HEXDIG"),
		abnf.Repeat0Inf("*phonedigit-hex", phoneHex),
	)
	// pname = 1*( alphanum / "-" )
	r.telPname = r.run("pname", "pname", telPnameChars)

	// par = parameter / extension / isdn-subaddress, all of them are ";" pname [ "=" pvalue ]
	par := abnf.Concat(
		"tel-param",
		r.char(';'),
		r.telPname,
		abnf.Optional("[pvalue]", abnf.Concat("=pvalue", r.char('='), r.escRun("pvalue", "pvalue", paramChars, false))),
	)
	pars := abnf.Repeat0Inf("*par", par)
	// context = ";phone-context=" descriptor, descriptor = domainname / global-number-digits
	context := abnf.Concat(
		"tel-param",
		r.char(';'),
		abnf.Concat("pname", r.lit("phone-context")),
		r.char('='),
		abnf.Concat("pvalue", abnf.AltFirst("descriptor", r.globalNumberDigits, r.hostname)),
	)

	// telephone-uri = "tel:" telephone-subscriber, telephone-subscriber = global-number / local-number
	r.telURI = abnf.Concat(
		"telephone-uri",
		r.lit("tel:"),
		abnf.AltFirst(
			"telephone-subscriber",
			abnf.Concat("global-number", r.globalNumberDigits, pars),
			abnf.Concat("local-number", r.localNumberDigits, pars, context, pars),
		),
	)
}
