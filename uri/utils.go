package uri

import "github.com/ghettovoice/sipcodec/internal/grammar"

func shouldEscapeUserChar(c byte) bool { return !grammar.IsURIUserCharUnreserved(c) }

func shouldEscapePasswdChar(c byte) bool { return !grammar.IsURIPasswdCharUnreserved(c) }

// shouldEscapeURIParamChar reports whether the given byte for URI parameters needs escaping.
func shouldEscapeURIParamChar(c byte) bool { return !grammar.IsURIParamCharUnreserved(c) }

// shouldEscapeURIHeaderChar reports whether the given byte for URI headers needs escaping.
func shouldEscapeURIHeaderChar(c byte) bool { return !grammar.IsURIHeaderCharUnreserved(c) }

func escapeParam(s string) string { return grammar.Escape(s, shouldEscapeURIParamChar) }

func escapeHeader(s string) string { return grammar.Escape(s, shouldEscapeURIHeaderChar) }
