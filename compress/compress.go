package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"

	"github.com/flatjson/flatjson/errs"
)

// Format identifies a compression stream format.
type Format uint8

const (
	FormatNone Format = iota
	FormatGzip
	FormatZstd
	FormatLZ4
	FormatS2
)

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatS2:
		return "s2"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a format name as used in flags and configuration.
// Common short spellings such as "gz" and "zst" are accepted. Unknown names
// fail with errs.ErrUnknownFormat.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return FormatNone, nil
	case "gzip", "gz":
		return FormatGzip, nil
	case "zstd", "zst":
		return FormatZstd, nil
	case "lz4":
		return FormatLZ4, nil
	case "s2":
		return FormatS2, nil
	default:
		return FormatNone, fmt.Errorf("%w: %q", errs.ErrUnknownFormat, name)
	}
}

// FromPath picks the format implied by a file extension, such as .gz or
// .zst. Paths without a recognized extension map to FormatNone.
func FromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".zst", ".zstd":
		return FormatZstd
	case ".lz4":
		return FormatLZ4
	case ".s2":
		return FormatS2
	default:
		return FormatNone
	}
}

// Stream magic bytes. The s2 magic is the framed snappy stream identifier
// chunk header, shared by s2 and snappy streams.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
	magicS2   = []byte{0xff, 0x06, 0x00, 0x00}
)

const maxMagicLen = 4

// Detect sniffs the format from the first bytes of a stream. Data that
// matches no known magic, including plain JSON text, reports FormatNone.
func Detect(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(head, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(head, magicLZ4):
		return FormatLZ4
	case bytes.HasPrefix(head, magicS2):
		return FormatS2
	default:
		return FormatNone
	}
}

// DetectReader sniffs the format of r without consuming it. The returned
// reader must be used in place of r, as it holds the sniffed bytes.
func DetectReader(r io.Reader) (Format, io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(maxMagicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return FormatNone, nil, fmt.Errorf("failed to sniff input: %w", err)
	}
	return Detect(head), br, nil
}

// OpenReader wraps r with the decompressor matching its sniffed format.
// Unrecognized input is passed through as-is, so plain and compressed JSON
// take the same path. Closing the result never closes the underlying
// reader.
func OpenReader(r io.Reader) (io.ReadCloser, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", errs.ErrNilValue)
	}
	format, br, err := DetectReader(r)
	if err != nil {
		return nil, err
	}
	return NewReader(br, format)
}

// NewReader wraps r with the decompressor for an already known format.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case FormatNone:
		return io.NopCloser(r), nil
	case FormatGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return gz, nil
	case FormatZstd:
		return newZstdReader(r)
	case FormatLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case FormatS2:
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownFormat, f)
	}
}

// NewWriter wraps w with the compressor for a format. The result must be
// closed to flush the stream trailer; closing it never closes w.
func NewWriter(w io.Writer, f Format) (io.WriteCloser, error) {
	switch f {
	case FormatNone:
		return nopWriteCloser{w}, nil
	case FormatGzip:
		return gzip.NewWriter(w), nil
	case FormatZstd:
		return newZstdWriter(w)
	case FormatLZ4:
		return lz4.NewWriter(w), nil
	case FormatS2:
		return s2.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownFormat, f)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
