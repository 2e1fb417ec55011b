// Package render turns usage telemetry into a single ANSI-colored status line.
// Everything in this package is pure: no I/O, no clocks other than the ones
// passed in, so every function can be re-run per frame without drift.
package render

import "unicode/utf8"

// Reset is the SGR sequence that clears all attributes.
const Reset = "\x1b[0m"

// escLookahead bounds the scan for an SGR terminator. Sequences longer than
// this are treated as garbage rather than scanned to end of input.
const escLookahead = 25

// TokenKind discriminates the two halves of the token stream.
type TokenKind int

const (
	// TokenControl is a complete ANSI SGR sequence, kept verbatim.
	TokenControl TokenKind = iota
	// TokenVisible is a single visible character plus the color state it
	// inherited from the sequences before it.
	TokenVisible
)

// Token is one atomic unit of a rendered line: either a control sequence or
// one visible character. Color holds the most recent non-reset control
// sequence in effect when a visible character was scanned ("" after a reset),
// so a compositor can tell pre-colored characters from bare ones.
type Token struct {
	Kind  TokenKind
	Raw   string // control bytes for TokenControl, the character for TokenVisible
	Char  rune   // valid for TokenVisible
	Color string // inherited color state, "" means none
}

// Scan splits text into control-sequence and visible-character tokens.
//
// On ESC it looks ahead up to escLookahead bytes for the 'm' terminator; if
// none is found the ESC itself becomes a visible character, so a truncated or
// hostile escape can never swallow the rest of the line. The function is a
// pure function of its input.
func Scan(text string) []Token {
	tokens := make([]Token, 0, len(text))
	color := ""

	for i := 0; i < len(text); {
		if text[i] == 0x1b {
			if end, ok := findTerminator(text, i); ok {
				seq := text[i : end+1]
				if seq == Reset {
					color = ""
				} else {
					color = seq
				}
				tokens = append(tokens, Token{Kind: TokenControl, Raw: seq})
				i = end + 1
				continue
			}
			// Unterminated escape: demote to a literal character.
			tokens = append(tokens, Token{Kind: TokenVisible, Raw: text[i : i+1], Char: rune(text[i]), Color: color})
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		tokens = append(tokens, Token{Kind: TokenVisible, Raw: text[i : i+size], Char: r, Color: color})
		i += size
	}

	return tokens
}

// findTerminator locates the 'm' that ends an SGR sequence starting at start,
// within the lookahead bound.
func findTerminator(text string, start int) (int, bool) {
	limit := start + escLookahead
	if limit > len(text)-1 {
		limit = len(text) - 1
	}
	for j := start + 1; j <= limit; j++ {
		if text[j] == 'm' {
			return j, true
		}
	}
	return 0, false
}

// Emit re-assembles a token stream into a string. Scan followed by Emit is
// the identity for any input.
func Emit(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Raw)
	}
	out := make([]byte, 0, n)
	for _, t := range tokens {
		out = append(out, t.Raw...)
	}
	return string(out)
}

// VisibleCount returns the number of visible characters in text, ignoring
// well-formed control sequences.
func VisibleCount(text string) int {
	n := 0
	for _, t := range Scan(text) {
		if t.Kind == TokenVisible {
			n++
		}
	}
	return n
}

// StripControl removes all control sequences, leaving only visible characters.
// Used to sanitize untrusted display text (model names, plan names) before it
// joins the line.
func StripControl(text string) string {
	var out []byte
	for _, t := range Scan(text) {
		if t.Kind == TokenVisible && t.Char != 0x1b {
			out = append(out, t.Raw...)
		}
	}
	return string(out)
}
