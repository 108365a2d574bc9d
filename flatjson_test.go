package flatjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flatjson/flatjson/errs"
	"github.com/flatjson/flatjson/flatten"
	"github.com/flatjson/flatjson/unflatten"
)

func TestFlatten(t *testing.T) {
	flat, err := Flatten(`{"a":{"b":1,"c":[2,3]}}`)
	require.NoError(t, err)
	require.Equal(t, `{"a.b":1,"a.c[0]":2,"a.c[1]":3}`, flat)

	_, err = Flatten(`{"broken":`)
	require.ErrorIs(t, err, errs.ErrMalformedJSON)
}

func TestFlattenWithOptions(t *testing.T) {
	flat, err := Flatten(`{"a":{"b":[1,2]}}`,
		flatten.WithFlattenMode(flatten.ModeKeepArrays),
		flatten.WithSeparator('/'))
	require.NoError(t, err)
	require.Equal(t, `{"a/b":[1,2]}`, flat)

	_, err = Flatten(`{}`, flatten.WithSeparator('"'))
	require.ErrorIs(t, err, errs.ErrInvalidSeparator)
}

func TestFlattenAsMap(t *testing.T) {
	m, err := FlattenAsMap(`{"a":{"b":1},"c":true}`)
	require.NoError(t, err)
	require.Equal(t, []string{"a.b", "c"}, m.Keys())

	v, ok := m.Get("a.b")
	require.True(t, ok)
	require.Equal(t, flatten.Number("1"), v)
}

func TestUnflatten(t *testing.T) {
	nested, err := Unflatten(`{"a.b":1,"a.c[0]":2,"a.c[1]":3}`)
	require.NoError(t, err)
	require.Equal(t, `{"a":{"b":1,"c":[2,3]}}`, nested)

	_, err = Unflatten(`{"a":1,"a.b":2}`)
	require.ErrorIs(t, err, errs.ErrKeyConflict)
}

func TestUnflattenWithOptions(t *testing.T) {
	nested, err := Unflatten(`{"a/b(0)":1}`,
		unflatten.WithSeparator('/'),
		unflatten.WithLeftAndRightBrackets('(', ')'))
	require.NoError(t, err)
	require.Equal(t, `{"a":{"b":[1]}}`, nested)
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	const doc = `{"a":{"b":1,"c":null,"d":[false,true]},"e":"f","g":2.3}`
	flat, err := Flatten(doc)
	require.NoError(t, err)
	back, err := Unflatten(flat)
	require.NoError(t, err)
	require.Equal(t, doc, back)
}

func TestKeyID(t *testing.T) {
	require.Equal(t, KeyID("a.b.c[0]"), KeyID("a.b.c[0]"))
	require.NotEqual(t, KeyID("a.b.c[0]"), KeyID("a.b.c[1]"))
}

func TestFingerprint(t *testing.T) {
	fp1, err := Fingerprint(`{"a": {"b": 1}}`)
	require.NoError(t, err)
	fp2, err := Fingerprint(`{"a":{"b":1}}`)
	require.NoError(t, err)
	// Whitespace differences vanish in the flattened rendering.
	require.Equal(t, fp1, fp2)

	fp3, err := Fingerprint(`{"a":{"b":2}}`)
	require.NoError(t, err)
	require.NotEqual(t, fp1, fp3)

	_, err = Fingerprint(`not json`)
	require.ErrorIs(t, err, errs.ErrMalformedJSON)
}
