package jsonval

import (
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/flatjson/flatjson/errs"
)

// Parse decodes one JSON value from data. The whole input must be consumed:
// anything but whitespace after the top-level value is an error. All returned
// errors unwrap to errs.ErrMalformedJSON and report a 1-based line and
// column.
func Parse(data []byte) (*Value, error) {
	p := &parser{data: data}
	p.skipSpace()
	if p.atEnd() {
		return nil, p.errorf("empty input")
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, p.errorf("unexpected character %q after top-level value", p.data[p.pos])
	}
	return v, nil
}

// ParseString decodes one JSON value from a string.
func ParseString(src string) (*Value, error) {
	return Parse([]byte(src))
}

// ParseReader reads r to the end and decodes one JSON value from its
// contents.
func ParseReader(r io.Reader) (*Value, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", errs.ErrNilValue)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Parse(data)
}

// parser is a single-pass byte scanner over the input. pos always points at
// the next unconsumed byte.
type parser struct {
	data []byte
	pos  int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.data) }

func (p *parser) skipSpace() {
	for !p.atEnd() {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// errorf builds a malformed-input error located at the current position.
func (p *parser) errorf(format string, args ...any) error {
	line, col := 1, 0
	for i := 0; i < p.pos && i < len(p.data); i++ {
		if p.data[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w at line %d, column %d: %s", errs.ErrMalformedJSON, line, col+1, msg)
}

func (p *parser) errUnexpectedEnd(in string) error {
	return p.errorf("unexpected end of input in %s", in)
}

func (p *parser) parseValue() (*Value, error) {
	if p.atEnd() {
		return nil, p.errUnexpectedEnd("value")
	}
	switch c := p.data[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseStringText()
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case c == 't':
		return p.parseLiteral("true", NewBool(true))
	case c == 'f':
		return p.parseLiteral("false", NewBool(false))
	case c == 'n':
		return p.parseLiteral("null", NewNull())
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf("illegal character %q at start of value", c)
	}
}

func (p *parser) parseLiteral(lit string, v *Value) (*Value, error) {
	if len(p.data)-p.pos < len(lit) || string(p.data[p.pos:p.pos+len(lit)]) != lit {
		return nil, p.errorf("invalid literal, expected %q", lit)
	}
	p.pos += len(lit)
	return v, nil
}

func (p *parser) parseObject() (*Value, error) {
	p.pos++ // consume '{'
	obj := NewObject()
	p.skipSpace()
	if p.atEnd() {
		return nil, p.errUnexpectedEnd("object")
	}
	if p.data[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipSpace()
		if p.atEnd() {
			return nil, p.errUnexpectedEnd("object")
		}
		if p.data[p.pos] != '"' {
			return nil, p.errorf("expected quoted member name, found %q", p.data[p.pos])
		}
		name, err := p.parseStringText()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.atEnd() {
			return nil, p.errUnexpectedEnd("object")
		}
		if p.data[p.pos] != ':' {
			return nil, p.errorf("expected ':' after member name, found %q", p.data[p.pos])
		}
		p.pos++
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Add(name, val)
		p.skipSpace()
		if p.atEnd() {
			return nil, p.errUnexpectedEnd("object")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, p.errorf("expected ',' or '}' in object, found %q", p.data[p.pos])
		}
	}
}

func (p *parser) parseArray() (*Value, error) {
	p.pos++ // consume '['
	arr := NewArray()
	p.skipSpace()
	if p.atEnd() {
		return nil, p.errUnexpectedEnd("array")
	}
	if p.data[p.pos] == ']' {
		p.pos++
		return arr, nil
	}
	for {
		p.skipSpace()
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Append(elem)
		p.skipSpace()
		if p.atEnd() {
			return nil, p.errUnexpectedEnd("array")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return arr, nil
		default:
			return nil, p.errorf("expected ',' or ']' in array, found %q", p.data[p.pos])
		}
	}
}

// parseStringText consumes a quoted string and returns its decoded content.
// The fast path copies nothing until the first escape.
func (p *parser) parseStringText() (string, error) {
	p.pos++ // consume '"'
	start := p.pos
	for !p.atEnd() {
		switch c := p.data[p.pos]; {
		case c == '"':
			s := string(p.data[start:p.pos])
			p.pos++
			return s, nil
		case c == '\\':
			return p.parseStringEscaped(start)
		case c < 0x20:
			return "", p.errorf("raw control character 0x%02x in string", c)
		default:
			p.pos++
		}
	}
	return "", p.errUnexpectedEnd("string")
}

// parseStringEscaped finishes a string that contains at least one escape,
// accumulating decoded bytes in a scratch buffer.
func (p *parser) parseStringEscaped(start int) (string, error) {
	buf := append([]byte(nil), p.data[start:p.pos]...)
	for !p.atEnd() {
		switch c := p.data[p.pos]; {
		case c == '"':
			p.pos++
			return string(buf), nil
		case c == '\\':
			p.pos++
			if p.atEnd() {
				return "", p.errUnexpectedEnd("string escape")
			}
			switch e := p.data[p.pos]; e {
			case '"', '\\', '/':
				buf = append(buf, e)
				p.pos++
			case 'b':
				buf = append(buf, '\b')
				p.pos++
			case 'f':
				buf = append(buf, '\f')
				p.pos++
			case 'n':
				buf = append(buf, '\n')
				p.pos++
			case 'r':
				buf = append(buf, '\r')
				p.pos++
			case 't':
				buf = append(buf, '\t')
				p.pos++
			case 'u':
				decoded, err := p.parseHexEscapeRun()
				if err != nil {
					return "", err
				}
				buf = append(buf, decoded...)
			default:
				return "", p.errorf("invalid escape character %q", e)
			}
		case c < 0x20:
			return "", p.errorf("raw control character 0x%02x in string", c)
		default:
			buf = append(buf, c)
			p.pos++
		}
	}
	return "", p.errUnexpectedEnd("string")
}

// parseHexEscapeRun decodes a maximal run of adjacent \uXXXX escapes as
// UTF-16 code units, so surrogate pairs reassemble into single runes. The
// position is on the 'u' of the first escape. Unpaired surrogates decode to
// U+FFFD.
func (p *parser) parseHexEscapeRun() ([]byte, error) {
	var units []uint16
	for {
		p.pos++ // consume 'u'
		if len(p.data)-p.pos < 4 {
			return nil, p.errUnexpectedEnd("\\u escape")
		}
		var unit uint16
		for i := 0; i < 4; i++ {
			h, ok := hexValue(p.data[p.pos+i])
			if !ok {
				return nil, p.errorf("invalid hex digit %q in \\u escape", p.data[p.pos+i])
			}
			unit = unit<<4 | uint16(h)
		}
		p.pos += 4
		units = append(units, unit)
		if len(p.data)-p.pos < 2 || p.data[p.pos] != '\\' || p.data[p.pos+1] != 'u' {
			break
		}
		p.pos++ // consume '\', loop consumes 'u'
	}
	return []byte(string(utf16.Decode(units))), nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// parseNumber consumes a number following the strict JSON grammar: optional
// minus, integer part without leading zeros, optional fraction and exponent.
func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	if p.data[p.pos] == '-' {
		p.pos++
	}
	if p.atEnd() {
		return nil, p.errUnexpectedEnd("number")
	}
	switch c := p.data[p.pos]; {
	case c == '0':
		p.pos++
	case c >= '1' && c <= '9':
		p.pos++
		p.skipDigits()
	default:
		return nil, p.errorf("expected digit in number, found %q", c)
	}
	if !p.atEnd() && p.data[p.pos] == '.' {
		p.pos++
		if err := p.requireDigits("fraction"); err != nil {
			return nil, err
		}
	}
	if !p.atEnd() && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		p.pos++
		if !p.atEnd() && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		if err := p.requireDigits("exponent"); err != nil {
			return nil, err
		}
	}
	return &Value{kind: KindNumber, text: string(p.data[start:p.pos])}, nil
}

func (p *parser) skipDigits() {
	for !p.atEnd() && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
		p.pos++
	}
}

func (p *parser) requireDigits(in string) error {
	if p.atEnd() {
		return p.errUnexpectedEnd("number " + in)
	}
	if c := p.data[p.pos]; c < '0' || c > '9' {
		return p.errorf("expected digit in number %s, found %q", in, c)
	}
	p.skipDigits()
	return nil
}

// validNumberLiteral reports whether s is a complete JSON number literal.
func validNumberLiteral(s string) bool {
	p := &parser{data: []byte(s)}
	if p.atEnd() {
		return false
	}
	if c := p.data[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	if _, err := p.parseNumber(); err != nil {
		return false
	}
	return p.atEnd()
}
