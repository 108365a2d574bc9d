package flatten

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListAppendAndAt(t *testing.T) {
	l := NewList()
	require.Equal(t, 0, l.Len())

	l.Append(Number("1"))
	l.Append("two")
	l.Append(nil)
	require.Equal(t, 3, l.Len())
	require.Equal(t, Number("1"), l.At(0))
	require.Equal(t, "two", l.At(1))
	require.Nil(t, l.At(2))

	require.Nil(t, l.At(-1))
	require.Nil(t, l.At(3))
}

func TestListVariadicConstructor(t *testing.T) {
	l := NewList(true, Number("2"))
	require.Equal(t, 2, l.Len())
	require.Equal(t, true, l.At(0))
}

func TestListAll(t *testing.T) {
	l := NewList("a", "b", "c")
	var got []any
	for i, v := range l.All() {
		require.Equal(t, len(got), i)
		got = append(got, v)
	}
	require.Equal(t, []any{"a", "b", "c"}, got)

	var seen int
	for range l.All() {
		seen++
		break
	}
	require.Equal(t, 1, seen)
}

func TestListString(t *testing.T) {
	require.Equal(t, `[]`, NewList().String())

	inner := NewOrderedMap()
	inner.Set("b", Number("1"))
	l := NewList(Number("1"), "s", nil, true, inner)
	require.Equal(t, `[1,"s",null,true,{"b":1}]`, l.String())
}
