// Package archive opens and creates corpus and report files with transparent
// compression. Plain, gzip (.gz) and xz (.xz) files are supported; input is
// detected by magic bytes, output by file extension.
package archive

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/versestats/core/errors"
)

// Stdio names standard input for Open and standard output for Create.
const Stdio = "-"

// Compression identifies a file compression format.
type Compression int

const (
	None Compression = iota
	Gzip
	XZ
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte("BZh")
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Sniff identifies the compression of a stream from its first bytes.
func Sniff(head []byte) (Compression, error) {
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return XZ, nil
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip, nil
	case bytes.HasPrefix(head, bzip2Magic):
		return None, errors.NewUnsupported("compression", "bzip2")
	case bytes.HasPrefix(head, zstdMagic):
		return None, errors.NewUnsupported("compression", "zstd")
	}
	return None, nil
}

// FromExtension picks the compression for an output path.
func FromExtension(path string) (Compression, error) {
	switch {
	case strings.HasSuffix(path, ".xz"):
		return XZ, nil
	case strings.HasSuffix(path, ".gz"):
		return Gzip, nil
	case strings.HasSuffix(path, ".bz2"), strings.HasSuffix(path, ".zst"):
		return None, errors.NewUnsupported("compression", path)
	}
	return None, nil
}

// Reader is a decompressing reader over a file.
type Reader struct {
	io.Reader
	Compression  Compression
	file         *os.File
	decompressor io.Closer
}

// Open opens path for reading, decompressing when the content is gzip or xz.
// Open(Stdio) reads standard input.
func Open(path string) (*Reader, error) {
	var f *os.File
	if path == Stdio {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, errors.NewIO("open", path, err)
		}
	}

	r, err := newReader(f)
	if err != nil {
		if f != os.Stdin {
			f.Close()
		}
		return nil, errors.Wrap(err, path)
	}
	if f != os.Stdin {
		r.file = f
	}
	return r, nil
}

func newReader(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, errors.NewIO("read", "", err)
	}
	c, err := Sniff(head)
	if err != nil {
		return nil, err
	}

	r := &Reader{Reader: br, Compression: c}
	switch c {
	case XZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, &errors.ParseError{Format: "xz", Message: "bad xz header", Err: err}
		}
		r.Reader = xzr
	case Gzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, &errors.ParseError{Format: "gzip", Message: "bad gzip header", Err: err}
		}
		r.Reader = gzr
		r.decompressor = gzr
	}
	return r, nil
}

// Close closes the reader and any underlying decompressor.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
