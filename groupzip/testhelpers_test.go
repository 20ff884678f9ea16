package groupzip

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

var errInjected = errors.New("injected failure")

// writeFiles creates each named file under dir with content derived from its name.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content of "+name), 0o644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

// readArchive returns the entries of a zip file keyed by name.
func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open archive %s: %v", path, err)
	}
	defer r.Close()
	out := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read entry %s: %v", f.Name, err)
		}
		out[f.Name] = data
	}
	return out
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// stubOpen replaces openMember for the duration of the test.
func stubOpen(t *testing.T, fn func(path string) (io.ReadCloser, error)) {
	t.Helper()
	orig := openMember
	openMember = fn
	t.Cleanup(func() { openMember = orig })
}

// brokenReader yields limit bytes and then fails.
type brokenReader struct {
	limit int
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.limit <= 0 {
		return 0, errInjected
	}
	n := min(len(p), r.limit)
	for i := range n {
		p[i] = 'x'
	}
	r.limit -= n
	return n, nil
}

func (r *brokenReader) Close() error { return nil }
