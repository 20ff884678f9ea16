package groupzip

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
)

// Swapped out in tests to inject failures.
var (
	openMember = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	renameFile = os.Rename
	removeFile = os.Remove
)

// ArchiveGroup zips members into <baseName><ext> and moves the finished archive
// into dir, replacing any file of that name. The archive is built in a scratch
// directory outside dir that is removed on every return path, so a failed
// attempt never leaves a partial archive in dir.
func ArchiveGroup(ctx context.Context, dir, baseName string, members []string, opts Options) (string, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return "", &GroupArchiveError{BaseName: baseName, Op: OpCreate, Err: err}
	}
	if !validBaseName(baseName) {
		return "", &GroupArchiveError{
			BaseName: baseName,
			Op:       OpCreate,
			Err:      fmt.Errorf("%w: %q", ErrInvalidBaseName, baseName),
		}
	}
	if len(members) == 0 {
		return "", &GroupArchiveError{BaseName: baseName, Op: OpCreate, Err: ErrEmptyGroup}
	}
	clean := filepath.Clean(dir)
	for _, m := range members {
		if filepath.Dir(filepath.Clean(m)) != clean {
			return "", &GroupArchiveError{
				BaseName: baseName,
				Op:       OpCreate,
				Err:      fmt.Errorf("%w: %s", ErrMemberOutsideDirectory, m),
			}
		}
	}

	scratch, err := os.MkdirTemp(opts.ScratchDir, "groupzip-*")
	if err != nil {
		return "", &GroupArchiveError{BaseName: baseName, Op: OpCreate, Err: err}
	}
	defer os.RemoveAll(scratch)

	name := baseName + opts.Extension
	built := filepath.Join(scratch, name)
	if err := writeArchive(ctx, built, members); err != nil {
		return "", &GroupArchiveError{BaseName: baseName, Op: OpCreate, Err: err}
	}

	final := filepath.Join(dir, name)
	if err := moveInto(built, final); err != nil {
		return "", &GroupArchiveError{BaseName: baseName, Op: OpMove, Err: err}
	}
	opts.Logger.Info("archived group", "base", baseName, "members", memberNames(members), "archive", final)

	if opts.RemoveMembers {
		var errs []error
		for _, m := range members {
			if err := removeFile(m); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return final, &GroupArchiveError{BaseName: baseName, Op: OpRemove, Err: errors.Join(errs...)}
		}
	}
	return final, nil
}

// validBaseName reports whether name can only ever name a file directly
// inside the target directory.
func validBaseName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func writeArchive(ctx context.Context, path string, members []string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := zip.NewWriter(f)
	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addMember(w, m); err != nil {
			return fmt.Errorf("add %s: %w", filepath.Base(m), err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Sync()
}

// addMember stores the file at path under its bare file name.
func addMember(w *zip.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	src, err := openMember(path)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := w.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

// moveInto renames src to dst. When they sit on different filesystems src is
// first copied to a hidden partial file next to dst, which is then renamed.
func moveInto(src, dst string) error {
	err := renameFile(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	partial := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".partial-"+uuid.NewString())
	if err := copyFile(src, partial); err != nil {
		os.Remove(partial)
		return err
	}
	if err := renameFile(partial, dst); err != nil {
		os.Remove(partial)
		return err
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()
	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func memberNames(members []string) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = filepath.Base(m)
	}
	return names
}
