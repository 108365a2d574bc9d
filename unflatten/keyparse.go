package unflatten

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/flatjson/flatjson/errs"
	"github.com/flatjson/flatjson/jsonval"
)

type segmentKind uint8

const (
	segNamed segmentKind = iota
	segIndexed
)

// segment is one decoded piece of a flattened key: a member name or an array
// index.
type segment struct {
	kind  segmentKind
	name  string
	index int
}

// keyParser tokenizes flattened keys with a three-way pattern compiled for
// one separator/bracket configuration: a bracketed index, a fenced name, or
// a plain run of characters free of the key punctuation. Separators between
// tokens are skipped by construction.
type keyParser struct {
	re    *regexp2.Regexp
	left  string
	right string
}

func newKeyParser(cfg *Config) *keyParser {
	lb := regexp2.Escape(string(cfg.leftBracket))
	rb := regexp2.Escape(string(cfg.rightBracket))
	pattern := lb + `\s*\d+\s*` + rb +
		`|` + lb + `\s*\\?"(.*?)\\?"\s*` + rb +
		`|[^` + classEscape(cfg.separator) + classEscape(cfg.leftBracket) + classEscape(cfg.rightBracket) + `]+`
	return &keyParser{
		re:    regexp2.MustCompile(pattern, regexp2.None),
		left:  string(cfg.leftBracket),
		right: string(cfg.rightBracket),
	}
}

// classEscape makes ch safe inside a regex character class.
func classEscape(ch rune) string {
	switch ch {
	case '\\', '[', ']', '^', '-':
		return `\` + string(ch)
	}
	return string(ch)
}

// parse splits key into segments. A key with no parseable content, such as
// the empty string, yields a single empty name so it still lands somewhere
// deterministic.
func (p *keyParser) parse(key string) ([]segment, error) {
	var segs []segment
	m, err := p.re.FindStringMatch(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", errs.ErrMalformedKey, key, err)
	}
	for m != nil {
		part := m.String()
		switch {
		case !strings.HasPrefix(part, p.left):
			name, err := unescapeSegment(part)
			if err != nil {
				return nil, err
			}
			segs = append(segs, segment{kind: segNamed, name: name})
		case hasFenceCapture(m):
			name, err := unescapeSegment(fenceCapture(m))
			if err != nil {
				return nil, err
			}
			segs = append(segs, segment{kind: segNamed, name: name})
		default:
			idx, err := p.parseIndex(part)
			if err != nil {
				return nil, err
			}
			segs = append(segs, segment{kind: segIndexed, index: idx})
		}
		m, err = p.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", errs.ErrMalformedKey, key, err)
		}
	}
	if len(segs) == 0 {
		segs = append(segs, segment{kind: segNamed})
	}
	return segs, nil
}

func hasFenceCapture(m *regexp2.Match) bool {
	g := m.GroupByNumber(1)
	return g != nil && len(g.Captures) > 0
}

func fenceCapture(m *regexp2.Match) string {
	return m.GroupByNumber(1).Captures[0].String()
}

func (p *keyParser) parseIndex(part string) (int, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(part, p.left), p.right)
	idx, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: array index %q", errs.ErrMalformedKey, part)
	}
	return idx, nil
}

// unescapeSegment decodes JSON escape sequences inside a segment name. Names
// without a backslash pass through untouched.
func unescapeSegment(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	v, err := jsonval.ParseString(`"` + s + `"`)
	if err != nil {
		return "", fmt.Errorf("%w: invalid escape in segment %q", errs.ErrMalformedKey, s)
	}
	return v.Str(), nil
}
