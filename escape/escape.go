// Package escape provides the pluggable string-escape policies applied when
// member names are embedded in flattened keys and when flattened output is
// rendered as JSON text.
//
// Two built-in policies are provided. Normal keeps non-ASCII text readable
// and escapes only what JSON requires; AllUnicodes additionally escapes every
// rune outside printable ASCII, producing 7-bit-safe output.
package escape

import (
	"strings"
	"unicode/utf16"
)

// Policy escapes a raw string for safe embedding in JSON text or in a
// flattened key.
type Policy interface {
	Escape(s string) string
}

// Func adapts a plain function to the Policy interface.
type Func func(string) string

// Escape implements Policy.
func (f Func) Escape(s string) string { return f(s) }

// Built-in policies.
var (
	// Normal escapes double quotes, backslashes, and control characters.
	// Runes outside ASCII pass through unchanged.
	Normal Policy = Func(escapeNormal)

	// AllUnicodes escapes like Normal and additionally turns every rune
	// outside the printable ASCII range into a \uXXXX sequence (two
	// sequences, a surrogate pair, for runes above U+FFFF).
	AllUnicodes Policy = Func(escapeAllUnicodes)

	// Default is the policy used when none is configured.
	Default = Normal
)

const hexDigits = "0123456789abcdef"

// shortEscape returns the two-character escape for ch, or 0 if ch has none.
func shortEscape(ch rune) byte {
	switch ch {
	case '"':
		return '"'
	case '\\':
		return '\\'
	case '\b':
		return 'b'
	case '\f':
		return 'f'
	case '\n':
		return 'n'
	case '\r':
		return 'r'
	case '\t':
		return 't'
	}

	return 0
}

func writeHexEscape(b *strings.Builder, ch rune) {
	if ch > 0xffff {
		hi, lo := utf16.EncodeRune(ch)
		writeHexEscape(b, hi)
		writeHexEscape(b, lo)
		return
	}
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[ch>>12&0xf])
	b.WriteByte(hexDigits[ch>>8&0xf])
	b.WriteByte(hexDigits[ch>>4&0xf])
	b.WriteByte(hexDigits[ch&0xf])
}

// needsEscape reports whether ch must be rewritten under the given policy
// reach (all=true for AllUnicodes).
func needsEscape(ch rune, all bool) bool {
	if ch == '"' || ch == '\\' || ch < 0x20 {
		return true
	}

	return all && ch > 0x7e
}

func escapeWith(s string, all bool) string {
	// Fast path: nothing to do for most real-world member names.
	clean := true
	for _, ch := range s {
		if needsEscape(ch, all) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, ch := range s {
		switch {
		case shortEscape(ch) != 0:
			b.WriteByte('\\')
			b.WriteByte(shortEscape(ch))
		case needsEscape(ch, all):
			writeHexEscape(&b, ch)
		default:
			b.WriteRune(ch)
		}
	}

	return b.String()
}

func escapeNormal(s string) string      { return escapeWith(s, false) }
func escapeAllUnicodes(s string) string { return escapeWith(s, true) }
