package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatjson/flatjson/errs"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "none", FormatNone.String())
	assert.Equal(t, "gzip", FormatGzip.String())
	assert.Equal(t, "zstd", FormatZstd.String())
	assert.Equal(t, "lz4", FormatLZ4.String())
	assert.Equal(t, "s2", FormatS2.String())
	assert.Equal(t, "unknown", Format(99).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"", FormatNone},
		{"none", FormatNone},
		{"gzip", FormatGzip},
		{"gz", FormatGzip},
		{"GZIP", FormatGzip},
		{"zstd", FormatZstd},
		{"zst", FormatZstd},
		{"lz4", FormatLZ4},
		{"s2", FormatS2},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		require.NoError(t, err, "name %q", tt.name)
		assert.Equal(t, tt.want, got, "name %q", tt.name)
	}

	_, err := ParseFormat("brotli")
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data.json.gz", FormatGzip},
		{"data.gzip", FormatGzip},
		{"data.json.ZST", FormatZstd},
		{"data.zstd", FormatZstd},
		{"data.json.lz4", FormatLZ4},
		{"data.json.s2", FormatS2},
		{"data.json", FormatNone},
		{"noext", FormatNone},
		{"dir.gz/file", FormatNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromPath(tt.path), "path %q", tt.path)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want Format
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, FormatGzip},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0x04}, FormatZstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18, 0x64}, FormatLZ4},
		{"s2", []byte{0xff, 0x06, 0x00, 0x00, 0x73}, FormatS2},
		{"plain json", []byte(`{"a":1}`), FormatNone},
		{"short head", []byte{0x1f}, FormatNone},
		{"empty", nil, FormatNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.head))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	const doc = `{"a":{"b":[1,2,3]},"c":"payload payload payload payload"}`
	formats := []Format{FormatNone, FormatGzip, FormatZstd, FormatLZ4, FormatS2}
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, f)
			require.NoError(t, err)
			_, err = io.WriteString(w, doc)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			require.Equal(t, f, Detect(buf.Bytes()))

			r, err := OpenReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			require.Equal(t, doc, string(got))
		})
	}
}

func TestDetectReaderKeepsInput(t *testing.T) {
	format, r, err := DetectReader(strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	require.Equal(t, FormatNone, format)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(got))
}

func TestOpenReaderShortInput(t *testing.T) {
	r, err := OpenReader(strings.NewReader("5"))
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "5", string(got))

	r, err = OpenReader(strings.NewReader(""))
	require.NoError(t, err)
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestOpenReaderNil(t *testing.T) {
	_, err := OpenReader(nil)
	require.ErrorIs(t, err, errs.ErrNilValue)
}

func TestNewReaderTruncatedGzip(t *testing.T) {
	_, err := NewReader(bytes.NewReader(magicGzip), FormatGzip)
	require.Error(t, err)
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), Format(99))
	require.ErrorIs(t, err, errs.ErrUnknownFormat)

	_, err = NewWriter(io.Discard, Format(99))
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}
