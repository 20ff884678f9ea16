package groupzip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRun_EmptyDirectory(t *testing.T) {
	res, err := Run(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Count != 0 || len(res.Archives) != 0 || res.Err() != nil {
		t.Errorf("Expected empty result, got %+v", res)
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "gone"), Options{})
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("Expected ErrDirectoryNotFound, got: %v", err)
	}
}

func TestRun_RequiredCount(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "a.csv", "b.txt")

	res, err := Run(context.Background(), dir, Options{Policy: Policy{Kind: RequireCount, Count: 2}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.zip")}
	if !slices.Equal(res.Archives, want) || res.Count != 1 {
		t.Fatalf("Archives = %v (count %d), want %v", res.Archives, res.Count, want)
	}

	entries := readArchive(t, want[0])
	if len(entries) != 2 || entries["a.txt"] == nil || entries["a.csv"] == nil {
		t.Errorf("unexpected archive entries: %v", entries)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].BaseName != "b" || res.Skipped[0].Reason != SkipCountMismatch {
		t.Errorf("unexpected skipped list: %+v", res.Skipped)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.zip")); !os.IsNotExist(err) {
		t.Errorf("b.zip should not exist, stat err: %v", err)
	}
}

func TestRun_RerunDoesNotArchiveArchives(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "a.csv", "b.txt")

	opts := Options{Policy: Policy{Kind: Unconditional}}
	first, err := Run(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := Run(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if !slices.Equal(first.Archives, second.Archives) {
		t.Errorf("re-run produced %v, first run produced %v", second.Archives, first.Archives)
	}
	for _, archive := range second.Archives {
		for name := range readArchive(t, archive) {
			if strings.HasSuffix(name, ".zip") {
				t.Errorf("archive %s contains an archive %s", archive, name)
			}
		}
	}
	if names := dirNames(t, dir); !slices.Equal(names, []string{"a.csv", "a.txt", "a.zip", "b.txt", "b.zip"}) {
		t.Errorf("unexpected directory contents: %v", names)
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "bad.txt", "c.txt")

	stubOpen(t, func(path string) (io.ReadCloser, error) {
		if strings.HasPrefix(filepath.Base(path), "bad.") {
			return nil, errInjected
		}
		return os.Open(path)
	})

	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			res, err := Run(context.Background(), dir, Options{Workers: workers})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			want := []string{filepath.Join(dir, "a.zip"), filepath.Join(dir, "c.zip")}
			if !slices.Equal(res.Archives, want) {
				t.Errorf("Archives = %v, want %v", res.Archives, want)
			}
			if len(res.Failures) != 1 || res.Failures[0].BaseName != "bad" {
				t.Fatalf("unexpected failures: %v", res.Failures)
			}
			if !errors.Is(res.Err(), errInjected) {
				t.Errorf("Err() = %v, want injected failure", res.Err())
			}
			if _, err := os.Stat(filepath.Join(dir, "bad.zip")); !os.IsNotExist(err) {
				t.Errorf("bad.zip should not exist, stat err: %v", err)
			}
		})
	}
}

func TestRun_WorkersKeepOrder(t *testing.T) {
	dir := t.TempDir()
	var want []string
	for i := range 20 {
		base := fmt.Sprintf("tile%02d", i)
		writeFiles(t, dir, base+".tif", base+".tfw", base+".aux.xml")
		want = append(want, filepath.Join(dir, base+".zip"))
	}

	res, err := Run(context.Background(), dir, Options{Workers: 4, ScratchDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !slices.Equal(res.Archives, want) {
		t.Errorf("Archives out of order: %v", res.Archives)
	}
	for _, archive := range res.Archives {
		if entries := readArchive(t, archive); len(entries) != 3 {
			t.Errorf("%s has %d entries, want 3", archive, len(entries))
		}
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, dir, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Count != 0 || len(res.Failures) != 2 {
		t.Errorf("Expected 2 cancelled groups, got %+v", res)
	}
	if !errors.Is(res.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", res.Err())
	}
}

func TestRun_LogsPerGroupAndSummary(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.txt")

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.LogfmtFormatter})
	if _, err := Run(context.Background(), dir, Options{Logger: logger}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "archived group"); n != 2 {
		t.Errorf("Expected 2 group records, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "run complete") || !strings.Contains(out, "archived=2") {
		t.Errorf("missing summary record:\n%s", out)
	}
}

func TestRun_RemoveFailureListsArchiveAndFailure(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.txt")

	orig := removeFile
	removeFile = func(path string) error {
		if filepath.Base(path) == "a.txt" {
			return errInjected
		}
		return orig(path)
	}
	t.Cleanup(func() { removeFile = orig })

	res, err := Run(context.Background(), dir, Options{RemoveMembers: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.zip"), filepath.Join(dir, "b.zip")}
	if !slices.Equal(res.Archives, want) || res.Count != 2 {
		t.Errorf("Archives = %v (count %d), want %v", res.Archives, res.Count, want)
	}
	if len(res.Failures) != 1 || res.Failures[0].BaseName != "a" || res.Failures[0].Op != OpRemove {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	if !errors.Is(res.Err(), errInjected) {
		t.Errorf("Err() = %v, want injected failure", res.Err())
	}
}

func TestRun_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	writeFiles(t, dir, "a.txt", "a.csv")
	if err := os.Chmod(dir, 0o000); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	res, err := Run(context.Background(), dir, Options{})
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Expected fs.ErrPermission, got: %v", err)
	}
	if res != nil {
		t.Errorf("Expected no result, got %+v", res)
	}
	os.Chmod(dir, 0o755)
	if names := dirNames(t, dir); !slices.Equal(names, []string{"a.csv", "a.txt"}) {
		t.Errorf("unexpected directory contents: %v", names)
	}
}
