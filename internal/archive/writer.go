package archive

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// Writer is a compressing writer over a file. Close must be called to flush
// the compressed stream.
type Writer struct {
	io.Writer
	Compression Compression
	file        *os.File
	compressor  io.WriteCloser
}

// Create creates path, compressing according to its extension. Parent
// directories are created as needed. Create(Stdio) writes standard output
// uncompressed.
func Create(path string) (*Writer, error) {
	if path == Stdio {
		return &Writer{Writer: os.Stdout}, nil
	}
	c, err := FromExtension(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewIO("create directory", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewIO("create", path, err)
	}

	w := &Writer{Writer: f, Compression: c, file: f}
	switch c {
	case XZ:
		xzw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("create xz stream", path, err)
		}
		w.Writer, w.compressor = xzw, xzw
	case Gzip:
		gzw := gzip.NewWriter(f)
		w.Writer, w.compressor = gzw, gzw
	}
	return w, nil
}

// Close flushes the compressor and closes the file.
func (w *Writer) Close() error {
	var first error
	if w.compressor != nil {
		first = w.compressor.Close()
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
