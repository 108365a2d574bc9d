package flatten

import (
	"iter"

	"github.com/flatjson/flatjson/escape"
)

// List is an ordered sequence of flattened values. It appears in output when
// arrays are kept whole: as the coerced form of any array in keep-arrays mode
// and as the empty-array value in normal mode.
type List struct {
	elems []any
}

// NewList returns a list holding the given elements.
func NewList(elems ...any) *List {
	return &List{elems: elems}
}

// Append adds v to the end of the list.
func (l *List) Append(v any) {
	l.elems = append(l.elems, v)
}

// At returns the i-th element, or nil when i is out of range.
func (l *List) At(i int) any {
	if i < 0 || i >= len(l.elems) {
		return nil
	}
	return l.elems[i]
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// All iterates elements in order.
func (l *List) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range l.elems {
			if !yield(i, v) {
				return
			}
		}
	}
}

// String renders the list as minimal JSON under the default escape policy.
func (l *List) String() string {
	return JSONRenderer{}.Render(l, PrintMinimal, escape.Default)
}
