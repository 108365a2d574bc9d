package jsonval

import "strings"

const indentUnit = "  "

// String serializes the value as minimal JSON: no insignificant whitespace,
// number literals emitted exactly as stored.
func (v *Value) String() string {
	var b strings.Builder
	v.write(&b, false, 0)
	return b.String()
}

// PrettyString serializes the value with two-space indentation. Empty objects
// and arrays stay on one line.
func (v *Value) PrettyString() string {
	var b strings.Builder
	v.write(&b, true, 0)
	return b.String()
}

func (v *Value) write(b *strings.Builder, pretty bool, depth int) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.boolVal {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(v.text)
	case KindString:
		WriteQuoted(b, v.text)
	case KindObject:
		if len(v.members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteByte(',')
			}
			if pretty {
				writeNewlineIndent(b, depth+1)
			}
			WriteQuoted(b, m.Name)
			b.WriteByte(':')
			if pretty {
				b.WriteByte(' ')
			}
			m.Value.write(b, pretty, depth+1)
		}
		if pretty {
			writeNewlineIndent(b, depth)
		}
		b.WriteByte('}')
	case KindArray:
		if len(v.elems) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteByte(',')
			}
			if pretty {
				writeNewlineIndent(b, depth+1)
			}
			e.write(b, pretty, depth+1)
		}
		if pretty {
			writeNewlineIndent(b, depth)
		}
		b.WriteByte(']')
	}
}

func writeNewlineIndent(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

const hexDigits = "0123456789abcdef"

// WriteQuoted writes s as a quoted JSON string. Only the escapes JSON
// requires are applied: quote, backslash, the short control escapes and
// \u00XX for the remaining control bytes. Everything above 0x1f passes
// through as raw UTF-8.
func WriteQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b.WriteString(s[start:i])
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
		}
		start = i + 1
	}
	b.WriteString(s[start:])
	b.WriteByte('"')
}

// Quoted returns s as a quoted JSON string.
func Quoted(s string) string {
	var b strings.Builder
	WriteQuoted(&b, s)
	return b.String()
}
