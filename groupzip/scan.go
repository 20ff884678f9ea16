package groupzip

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Group is the set of files in a directory that share a base name.
type Group struct {
	BaseName string     `json:"base_name"`
	Members  []string   `json:"members"`
	Selected bool       `json:"selected"`
	Skip     SkipReason `json:"skip,omitempty"`
}

// readDir lists dir, mapping a missing directory to ErrDirectoryNotFound.
func readDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	return entries, nil
}

// candidate returns the base name of a directory entry that may join a group.
// Subdirectories, symlinks, hidden files and files carrying the archive
// extension never do.
func candidate(e os.DirEntry, opts Options) (string, bool) {
	if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
		return "", false
	}
	if hasExt(e.Name(), opts.Extension) {
		return "", false
	}
	return BaseName(opts.Rule, e.Name())
}

// ListBaseNames returns the sorted, distinct base names of the files directly
// under dir.
func ListBaseNames(dir string, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		base, ok := candidate(e, opts)
		if !ok || seen[base] {
			continue
		}
		seen[base] = true
		names = append(names, base)
	}
	slices.Sort(names)
	return names, nil
}

// ResolveGroup collects the files under dir whose base name is baseName and
// applies the selection policy to them.
func ResolveGroup(dir, baseName string, opts Options) (Group, error) {
	opts = opts.withDefaults()
	entries, err := readDir(dir)
	if err != nil {
		return Group{}, err
	}
	g := Group{BaseName: baseName}
	for _, e := range entries {
		if base, ok := candidate(e, opts); ok && base == baseName {
			g.Members = append(g.Members, filepath.Join(dir, e.Name()))
		}
	}
	g.Selected, g.Skip = opts.Policy.Select(g.Members)
	return g, nil
}

// Plan groups every file directly under dir and marks which groups the policy
// selects. Groups are ordered by base name and members by file name.
func Plan(dir string, opts Options) ([]Group, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by name, so members stay sorted.
	byBase := make(map[string][]string)
	var names []string
	for _, e := range entries {
		base, ok := candidate(e, opts)
		if !ok {
			continue
		}
		if _, seen := byBase[base]; !seen {
			names = append(names, base)
		}
		byBase[base] = append(byBase[base], filepath.Join(dir, e.Name()))
	}
	slices.Sort(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		g := Group{BaseName: name, Members: byBase[name]}
		g.Selected, g.Skip = opts.Policy.Select(g.Members)
		groups = append(groups, g)
	}
	return groups, nil
}
