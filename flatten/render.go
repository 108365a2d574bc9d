package flatten

import (
	"fmt"
	"strings"

	"github.com/flatjson/flatjson/escape"
)

// Renderer serializes a flattened value into JSON text. The value is one of
// nil, bool, string, Number, *List or *OrderedMap; implementations decide how
// whitespace and escaping are laid out.
type Renderer interface {
	Render(v any, mode PrintMode, policy escape.Policy) string
}

// JSONRenderer is the built-in Renderer. PrintMinimal emits no insignificant
// whitespace; PrintPretty indents nested containers by two spaces. Map keys
// and string values are passed through the escape policy; keys were already
// escaped when they were built, so escaping them again here keeps their
// literal backslashes intact on the wire.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(v any, mode PrintMode, policy escape.Policy) string {
	if policy == nil {
		policy = escape.Default
	}
	var b strings.Builder
	writeFlattened(&b, v, mode == PrintPretty, 0, policy)
	return b.String()
}

func writeFlattened(b *strings.Builder, v any, pretty bool, depth int, policy escape.Policy) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case string:
		b.WriteByte('"')
		b.WriteString(policy.Escape(val))
		b.WriteByte('"')
	case Number:
		b.WriteString(string(val))
	case *OrderedMap:
		if val.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		first := true
		for key, elem := range val.All() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			if pretty {
				writeIndent(b, depth+1)
			}
			b.WriteByte('"')
			b.WriteString(policy.Escape(key))
			b.WriteByte('"')
			b.WriteByte(':')
			if pretty {
				b.WriteByte(' ')
			}
			writeFlattened(b, elem, pretty, depth+1, policy)
		}
		if pretty {
			writeIndent(b, depth)
		}
		b.WriteByte('}')
	case *List:
		if val.Len() == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, elem := range val.All() {
			if i > 0 {
				b.WriteByte(',')
			}
			if pretty {
				writeIndent(b, depth+1)
			}
			writeFlattened(b, elem, pretty, depth+1, policy)
		}
		if pretty {
			writeIndent(b, depth)
		}
		b.WriteByte(']')
	default:
		// Foreign values stay renderable, matching a best-effort toString.
		fmt.Fprintf(b, "%v", val)
	}
}

func writeIndent(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
