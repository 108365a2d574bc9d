package flatten

import (
	"strconv"
	"strings"
	"unicode"
)

// currentKey encodes the path to the engine's current position, walking every
// stack frame from root to tip. An empty stack means the source itself is the
// current position, which maps to the reserved root key.
func (e *engine) currentKey() string {
	if len(e.stack) == 0 {
		return RootKey
	}
	var b strings.Builder
	for _, fr := range e.stack {
		if fr.isObject() {
			name := fr.members[fr.current].Name
			if e.cfg.transform != nil {
				name = e.cfg.transform(name)
			}
			e.appendName(&b, name)
		} else {
			b.WriteRune(e.cfg.leftBracket)
			b.WriteString(strconv.Itoa(fr.current))
			b.WriteRune(e.cfg.rightBracket)
		}
	}
	return b.String()
}

// appendName writes one named segment. Names that collide with the key
// punctuation are fenced as leftBracket \" name \" rightBracket, with the
// backslash-quote pairs stored literally in the key; everything else joins
// the previous token with the separator. Fenced and indexed segments never
// take a separator.
func (e *engine) appendName(b *strings.Builder, name string) {
	if e.needsFence(name) {
		b.WriteRune(e.cfg.leftBracket)
		b.WriteString(`\"`)
		b.WriteString(e.cfg.policy.Escape(name))
		b.WriteString(`\"`)
		b.WriteRune(e.cfg.rightBracket)
		return
	}
	if b.Len() != 0 {
		b.WriteRune(e.cfg.separator)
	}
	b.WriteString(e.cfg.policy.Escape(name))
}

// needsFence reports whether the name would be ambiguous if joined plainly:
// it contains the separator, either bracket, or any whitespace.
func (e *engine) needsFence(name string) bool {
	if strings.ContainsRune(name, e.cfg.separator) ||
		strings.ContainsRune(name, e.cfg.leftBracket) ||
		strings.ContainsRune(name, e.cfg.rightBracket) {
		return true
	}
	return strings.IndexFunc(name, unicode.IsSpace) >= 0
}
