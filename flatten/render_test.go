package flatten

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatjson/flatjson/escape"
)

func TestJSONRendererScalars(t *testing.T) {
	r := JSONRenderer{}
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"number", Number("2.50e1"), "2.50e1"},
		{"string", "plain", `"plain"`},
		{"string escaped", `say "hi"`, `"say \"hi\""`},
		{"foreign value", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.Render(tt.in, PrintMinimal, escape.Default))
		})
	}
}

func TestJSONRendererPolicyAppliesToKeysAndStrings(t *testing.T) {
	m := NewOrderedMap()
	m.Set("é", "ü")

	minimal := JSONRenderer{}.Render(m, PrintMinimal, escape.AllUnicodes)
	require.Equal(t, `{"\u00e9":"\u00fc"}`, minimal)
}

func TestJSONRendererNilPolicyFallsBack(t *testing.T) {
	got := JSONRenderer{}.Render(`a"b`, PrintMinimal, nil)
	require.Equal(t, `"a\"b"`, got)
}

func TestJSONRendererPretty(t *testing.T) {
	inner := NewOrderedMap()
	inner.Set("b", Number("2"))

	m := NewOrderedMap()
	m.Set("a", Number("1"))
	m.Set("list", NewList(true, inner))

	want := `{
  "a": 1,
  "list": [
    true,
    {
      "b": 2
    }
  ]
}`
	require.Equal(t, want, JSONRenderer{}.Render(m, PrintPretty, escape.Default))

	// Empty containers stay on one line even in pretty mode.
	require.Equal(t, `{}`, JSONRenderer{}.Render(NewOrderedMap(), PrintPretty, escape.Default))
	require.Equal(t, `[]`, JSONRenderer{}.Render(NewList(), PrintPretty, escape.Default))
}
