package archive

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/versestats/core/errors"
)

const sample = "1|1|بسم الله الرحمن الرحيم\n1|2|الحمد لله رب العالمين\n"

func writeXZ(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := io.WriteString(w, content); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close xz: %v", err)
	}
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	w := gzip.NewWriter(f)
	if _, err := io.WriteString(w, content); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
}

func readAll(t *testing.T, path string) (string, Compression) {
	t.Helper()
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data), r.Compression
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(plain, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	xzPath := filepath.Join(dir, "corpus.txt.xz")
	writeXZ(t, xzPath, sample)
	gzPath := filepath.Join(dir, "corpus.txt.gz")
	writeGzip(t, gzPath, sample)
	// content decides, not the name
	misnamed := filepath.Join(dir, "corpus.dat")
	writeXZ(t, misnamed, sample)

	tests := []struct {
		path string
		want Compression
	}{
		{plain, None},
		{xzPath, XZ},
		{gzPath, Gzip},
		{misnamed, XZ},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, c := readAll(t, tt.path)
			if got != sample {
				t.Errorf("content = %q, want %q", got, sample)
			}
			if c != tt.want {
				t.Errorf("Compression = %v, want %v", c, tt.want)
			}
		})
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	got, c := readAll(t, path)
	if got != "" || c != None {
		t.Errorf("Open(empty) = %q, %v", got, c)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	var ioe *errors.IOError
	if _, err := Open(filepath.Join(dir, "missing.txt")); !errors.As(err, &ioe) {
		t.Errorf("Open(missing) error = %v, want *IOError", err)
	}

	bz := filepath.Join(dir, "corpus.txt.bz2")
	if err := os.WriteFile(bz, []byte("BZh91AY&SY"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(bz); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Open(bz2) error = %v, want ErrUnsupported", err)
	}

	truncated := filepath.Join(dir, "bad.gz")
	if err := os.WriteFile(truncated, []byte{0x1f, 0x8b}, 0644); err != nil {
		t.Fatal(err)
	}
	var pe *errors.ParseError
	if _, err := Open(truncated); !errors.As(err, &pe) {
		t.Errorf("Open(truncated gzip) error = %v, want *ParseError", err)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"report.json", "out/report.json.gz", "out/report.json.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			w, err := Create(path)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if _, err := io.WriteString(w, sample); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if got, c := readAll(t, path); got != sample || c != w.Compression {
				t.Errorf("round trip = %q (%v), want %q (%v)", got, c, sample, w.Compression)
			}
		})
	}

	if _, err := Create(filepath.Join(dir, "report.json.bz2")); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Create(bz2) error = %v, want ErrUnsupported", err)
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		head    []byte
		want    Compression
		wantErr bool
	}{
		{nil, None, false},
		{[]byte("1|1|"), None, false},
		{[]byte{0x1f, 0x8b, 0x08}, Gzip, false},
		{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, XZ, false},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd}, None, true},
	}
	for _, tt := range tests {
		got, err := Sniff(tt.head)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("Sniff(%x) = %v, %v; want %v, err %v", tt.head, got, err, tt.want, tt.wantErr)
		}
	}
}
