//go:build cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

const zstdLevel = 3

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	return &zstdReader{r: gozstd.NewReader(r)}, nil
}

type zstdReader struct {
	r *gozstd.Reader
}

func (z *zstdReader) Read(p []byte) (int, error) { return z.r.Read(p) }

// Close releases the reader's native resources.
func (z *zstdReader) Close() error {
	z.r.Release()
	return nil
}

func newZstdWriter(w io.Writer) (io.WriteCloser, error) {
	return &zstdWriter{w: gozstd.NewWriterLevel(w, zstdLevel)}, nil
}

type zstdWriter struct {
	w *gozstd.Writer
}

func (z *zstdWriter) Write(p []byte) (int, error) { return z.w.Write(p) }

// Close flushes the stream trailer and releases native resources.
func (z *zstdWriter) Close() error {
	err := z.w.Close()
	z.w.Release()
	return err
}
