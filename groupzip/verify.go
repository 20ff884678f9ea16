package groupzip

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveReport describes the state of one archive on disk.
type ArchiveReport struct {
	Path     string   `json:"path"`
	Entries  int      `json:"entries"`
	Compared int      `json:"compared"` // entries checked against a file still next to the archive
	Problems []string `json:"problems,omitempty"`
}

// OK reports whether no problems were found.
func (r ArchiveReport) OK() bool {
	return len(r.Problems) == 0
}

// VerifyArchive reads every entry of the archive at path, which checks the
// stored CRC-32, and rejects entries that carry a directory component. When a
// file of the same name still sits next to the archive the two are compared by
// SHA-256. The returned error is only set when the archive cannot be opened.
func VerifyArchive(path string) (ArchiveReport, error) {
	report := ArchiveReport{Path: path}
	r, err := zip.OpenReader(path)
	if err != nil {
		return report, err
	}
	defer r.Close()

	dir := filepath.Dir(path)
	for _, f := range r.File {
		report.Entries++
		if f.Name != filepath.Base(f.Name) || strings.ContainsAny(f.Name, `/\`) {
			report.Problems = append(report.Problems, fmt.Sprintf("%v: %s", ErrNonFlatEntry, f.Name))
			continue
		}
		archived, err := entryHash(f)
		if err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("read %s: %v", f.Name, err))
			continue
		}
		onDisk, err := GetFileHash(filepath.Join(dir, f.Name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("hash %s: %v", f.Name, err))
			continue
		}
		report.Compared++
		if onDisk != archived {
			report.Problems = append(report.Problems, fmt.Sprintf("%v: %s", ErrContentMismatch, f.Name))
		}
	}
	return report, nil
}

func entryHash(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return GetHash(rc)
}

// VerifyDirectory verifies every archive directly under dir. Archives that
// cannot be opened are reported as problems rather than errors.
func VerifyDirectory(dir string, opts Options) ([]ArchiveReport, error) {
	opts = opts.withDefaults()
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	var reports []ArchiveReport
	for _, e := range entries {
		if !e.Type().IsRegular() || !hasExt(e.Name(), opts.Extension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		report, err := VerifyArchive(path)
		if err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("open archive: %v", err))
		}
		reports = append(reports, report)
	}
	return reports, nil
}
