package flatten

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatjson/flatjson/errs"
)

func TestSeparatorValidation(t *testing.T) {
	tests := []struct {
		name string
		sep  rune
	}{
		{"double quote", '"'},
		{"space", ' '},
		{"tab", '\t'},
		{"newline", '\n'},
		{"left bracket collision", '['},
		{"right bracket collision", ']'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(`{}`, WithSeparator(tt.sep))
			require.ErrorIs(t, err, errs.ErrInvalidSeparator)
		})
	}
}

func TestBracketValidation(t *testing.T) {
	tests := []struct {
		name        string
		left, right rune
	}{
		{"identical", '#', '#'},
		{"left is quote", '"', ')'},
		{"right is whitespace", '(', ' '},
		{"left collides with separator", '.', ')'},
		{"right collides with separator", '(', '.'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(`{}`, WithLeftAndRightBrackets(tt.left, tt.right))
			require.ErrorIs(t, err, errs.ErrInvalidBrackets)
		})
	}
}

func TestOptionOrderMatters(t *testing.T) {
	// Each option validates against the configuration as it stands, so a
	// separator clashing with the default brackets must be set after the
	// brackets move out of the way.
	_, err := New(`{}`, WithSeparator('['))
	require.ErrorIs(t, err, errs.ErrInvalidSeparator)

	f, err := New(`{"a":{"b":[1]}}`,
		WithLeftAndRightBrackets('<', '>'),
		WithSeparator('['))
	require.NoError(t, err)
	m, err := f.FlattenAsMap()
	require.NoError(t, err)
	require.Equal(t, []string{"a[b<0>"}, m.Keys())
}

func TestEnumOptionValidation(t *testing.T) {
	_, err := New(`{}`, WithFlattenMode(Mode(42)))
	require.Error(t, err)
	require.ErrorContains(t, err, "unknown flatten mode")

	_, err = New(`{}`, WithPrintMode(PrintMode(42)))
	require.Error(t, err)
	require.ErrorContains(t, err, "unknown print mode")
}

func TestNilOptionArguments(t *testing.T) {
	_, err := New(`{}`, WithStringEscapePolicy(nil))
	require.Error(t, err)

	_, err = New(`{}`, WithRenderer(nil))
	require.Error(t, err)

	// A nil transform is the documented way back to identity.
	f, err := New(`{"a":1}`, WithKeyTransform(nil))
	require.NoError(t, err)
	m, err := f.FlattenAsMap()
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, m.Keys())
}

func TestModeAndPrintModeNames(t *testing.T) {
	require.Equal(t, "normal", ModeNormal.String())
	require.Equal(t, "keep-arrays", ModeKeepArrays.String())
	require.Equal(t, "unknown", Mode(9).String())
	require.Equal(t, "minimal", PrintMinimal.String())
	require.Equal(t, "pretty", PrintPretty.String())
	require.Equal(t, "unknown", PrintMode(9).String())
}
