// Package compress reads and writes compressed JSON documents.
//
// Flattening inputs often arrive as compressed files, so the package
// recognizes the common stream formats by their magic bytes and wraps a
// plain io.Reader with the matching decompressor transparently:
//
//	r, err := compress.OpenReader(file)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	f, err := flatten.FromReader(r)
//
// Supported formats are gzip, zstd, lz4 and s2, all in their framed stream
// layout. Input that matches no magic passes through untouched, so callers
// can feed plain JSON and compressed JSON through the same path.
//
// For output, NewWriter wraps a writer with the compressor for a Format,
// and FromPath picks the Format from a file extension such as .gz or .zst.
//
// The zstd implementation is selected at build time: cgo builds use the
// libzstd bindings, pure Go builds use klauspost/compress. Both produce
// and consume standard zstd frames.
package compress
