package groupzip

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultExtension is the archive extension used when Options.Extension is empty.
const DefaultExtension = ".zip"

// DefaultRequiredCount is the member count the original sidecar tooling required.
const DefaultRequiredCount = 4

// PolicyKind names a selection policy.
type PolicyKind string

const (
	// Unconditional selects every non-empty group.
	Unconditional PolicyKind = "unconditional"
	// RequireCount selects groups with exactly Policy.Count members.
	RequireCount PolicyKind = "count"
	// RequireCompanion selects groups holding a member with the Policy.Companion extension.
	RequireCompanion PolicyKind = "companion"
)

// ParsePolicyKind returns the policy kind named by s. Unknown names are an error.
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch k := PolicyKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Unconditional, RequireCount, RequireCompanion:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// SkipReason explains why a group was not selected for archiving.
type SkipReason string

const (
	SkipEmpty            SkipReason = "empty"
	SkipCountMismatch    SkipReason = "count-mismatch"
	SkipMissingCompanion SkipReason = "missing-companion"
)

// Policy decides which file groups qualify for archiving. Exactly one kind is
// active per run.
type Policy struct {
	Kind      PolicyKind
	Count     int    // used by RequireCount
	Companion string // used by RequireCompanion, e.g. ".shp"
}

// Validate reports whether the policy can be applied.
func (p Policy) Validate() error {
	switch p.Kind {
	case Unconditional:
	case RequireCount:
		if p.Count < 1 {
			return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidPolicy, p.Count)
		}
	case RequireCompanion:
		ext := normalizeExt(p.Companion)
		if len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("%w: companion extension %q", ErrInvalidPolicy, p.Companion)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, p.Kind)
	}
	return nil
}

// Select applies the policy to the member paths of a group.
func (p Policy) Select(members []string) (bool, SkipReason) {
	if len(members) == 0 {
		return false, SkipEmpty
	}
	switch p.Kind {
	case RequireCount:
		if len(members) != p.Count {
			return false, SkipCountMismatch
		}
	case RequireCompanion:
		ext := normalizeExt(p.Companion)
		for _, m := range members {
			if hasExt(filepath.Base(m), ext) {
				return true, ""
			}
		}
		return false, SkipMissingCompanion
	}
	return true, ""
}

func (p Policy) String() string {
	switch p.Kind {
	case RequireCount:
		return fmt.Sprintf("%s=%d", p.Kind, p.Count)
	case RequireCompanion:
		return fmt.Sprintf("%s=%s", p.Kind, normalizeExt(p.Companion))
	}
	return string(p.Kind)
}

// Options configures a run. The zero value groups by first dot, archives every
// group and writes .zip files from a single worker.
type Options struct {
	Rule          BaseNameRule
	Policy        Policy
	Extension     string // archive extension, default ".zip"
	ScratchDir    string // parent of per-group scratch directories, default os.TempDir()
	RemoveMembers bool   // delete members once their archive is in place
	Workers       int
	Logger        *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Rule == "" {
		o.Rule = FirstDot
	}
	if o.Policy.Kind == "" {
		o.Policy.Kind = Unconditional
	}
	o.Policy.Companion = normalizeExt(o.Policy.Companion)
	o.Extension = normalizeExt(o.Extension)
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Validate checks the options after defaults have been applied.
func (o Options) Validate() error {
	o = o.withDefaults()
	if _, err := ParseBaseNameRule(string(o.Rule)); err != nil {
		return err
	}
	if len(o.Extension) < 2 || strings.ContainsAny(o.Extension, `/\`) {
		return fmt.Errorf("invalid archive extension %q", o.Extension)
	}
	return o.Policy.Validate()
}
