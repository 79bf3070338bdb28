package grammar

import (
	"github.com/ghettovoice/abnf"
)

type charClass [256]bool

func newCharClass(sets ...string) *charClass {
	var cc charClass
	for _, set := range sets {
		for i := range len(set) {
			cc[set[i]] = true
		}
	}
	return &cc
}

func classOf(pred func(c byte) bool) *charClass {
	var cc charClass
	for c := range 256 {
		cc[c] = pred(byte(c))
	}
	return &cc
}

func (cc *charClass) has(c byte) bool { return cc[c] }

// without returns a copy of the class with the given octets removed.
func (cc *charClass) without(set string) *charClass {
	cc2 := *cc
	for i := range len(set) {
		cc2[set[i]] = false
	}
	return &cc2
}

// op builds an operator matching one octet of the class,
// every run of adjacent octets becomes a single range.
func (cc *charClass) op(key string) abnf.Operator {
	var ops []abnf.Operator
	for lo := 0; lo < 256; lo++ {
		if !cc[lo] {
			continue
		}
		hi := lo
		for hi+1 < 256 && cc[hi+1] {
			hi++
		}
		ops = append(ops, abnf.Range(key, []byte{byte(lo)}, []byte{byte(hi)}))
		lo = hi
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}

const (
	alphaChars    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars    = "0123456789"
	hexChars      = digitChars + "abcdefABCDEF"
	alphanumChars = alphaChars + digitChars
	markChars     = "-_.!~*'()"
)

var (
	alphaClass      = newCharClass(alphaChars)
	digitClass      = newCharClass(digitChars)
	alphanumClass   = newCharClass(alphanumChars)
	tokenChars      = newCharClass(alphanumChars, "-.!%*_+`'~")
	wordChars       = newCharClass(alphanumChars, "-.!%*_+`'~", "()<>:\\\"/[]?{}")
	unreservedChars = newCharClass(alphanumChars, markChars)
	userChars       = newCharClass(alphanumChars, markChars, "%", "&=+$,;?/")
	passwdChars     = newCharClass(alphanumChars, markChars, "%", "&=+$,")
	paramChars      = newCharClass(alphanumChars, markChars, "%", "[]/:&+$")
	headerChars     = newCharClass(alphanumChars, markChars, "%", "[]/?:+$")
	uricChars       = newCharClass(alphanumChars, markChars, "%", ";/?:@&=+$,")
	schemeChars     = newCharClass(alphanumChars, "+-.")
	lineChars       = classOf(isLineChar)
	textChars       = classOf(func(c byte) bool { return isLineChar(c) && !isWSP(c) })
	qdtextChars     = classOf(isQDText)
	ctextChars      = classOf(isCText)
	telPnameChars   = newCharClass(alphanumChars, "-")
	phoneDigitChars = newCharClass(digitChars, "-.()")
	phoneHexChars   = newCharClass(hexChars, "*#-.()")
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isHex(c byte) bool { return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' }

func isWSP(c byte) bool { return c == ' ' || c == '\t' }

func isUnreserved(c byte) bool { return unreservedChars.has(c) }

func isUserChar(c byte) bool { return userChars.has(c) }

func isPasswdChar(c byte) bool { return passwdChars.has(c) }

func isParamChar(c byte) bool { return paramChars.has(c) }

func isHeaderChar(c byte) bool { return headerChars.has(c) }

// isLineChar matches any octet allowed inside a header line.
func isLineChar(c byte) bool { return c != '\r' && c != '\n' }

// isQDText matches qdtext except folded LWS, UTF8-NONASCII is accepted byte-wise.
func isQDText(c byte) bool { return c == '\t' || c >= 0x20 && c != '"' && c != '\\' && c != 0x7f }

// isCText matches ctext except folded LWS.
func isCText(c byte) bool { return c == '\t' || c >= 0x20 && c != '(' && c != ')' && c != '\\' && c != 0x7f }
