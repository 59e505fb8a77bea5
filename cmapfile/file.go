package cmapfile

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
)

// compressor wraps a writer per the path's extension.
func compressor(path string, w io.Writer) (io.Writer, func() error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := gzip.NewWriter(w)
		return zw, zw.Close
	case strings.HasSuffix(path, ".lz4"):
		zw := lz4.NewWriter(w)
		return zw, zw.Close
	default:
		return w, func() error { return nil }
	}
}

// decompressor wraps a reader per the path's extension.
func decompressor(path string, r io.Reader) (io.Reader, func() error, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case strings.HasSuffix(path, ".lz4"):
		return lz4.NewReader(r), func() error { return nil }, nil
	default:
		return r, func() error { return nil }, nil
	}
}

func save(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w, closeC := compressor(path, f)
	if err := write(w); err != nil {
		return err
	}
	return closeC()
}

func load[M any](path string, read func(io.Reader) (M, error)) (M, error) {
	var zero M
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	r, closeC, err := decompressor(path, f)
	if err != nil {
		return zero, err
	}
	m, err := read(r)
	if err != nil {
		return zero, err
	}
	return m, closeC()
}

// Save2 writes a 2-map to path, compressing per the extension.
func Save2(path string, m *cmap.CMap2) error {
	return save(path, func(w io.Writer) error { return Write2(w, m) })
}

// Load2 reads a 2-map from path, decompressing per the extension.
func Load2(path string, opts ...cmap.Option) (*cmap.CMap2, error) {
	return load(path, func(r io.Reader) (*cmap.CMap2, error) { return Read2(r, opts...) })
}

// Save3 writes a 3-map to path, compressing per the extension.
func Save3(path string, m *cmap.CMap3) error {
	return save(path, func(w io.Writer) error { return Write3(w, m) })
}

// Load3 reads a 3-map from path, decompressing per the extension.
func Load3(path string, opts ...cmap.Option) (*cmap.CMap3, error) {
	return load(path, func(r io.Reader) (*cmap.CMap3, error) { return Read3(r, opts...) })
}
