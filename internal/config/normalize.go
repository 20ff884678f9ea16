package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dendrascience/groupzip/groupzip"
)

// Normalize trims values, lowercases enumerations and gives extensions a
// leading dot.
func Normalize(cfg Config) Config {
	cfg.Grouping.BaseNameRule = strings.ToLower(strings.TrimSpace(cfg.Grouping.BaseNameRule))
	cfg.Grouping.Policy = strings.ToLower(strings.TrimSpace(cfg.Grouping.Policy))
	cfg.Grouping.Companion = dotted(cfg.Grouping.Companion)
	cfg.Archive.Extension = dotted(cfg.Archive.Extension)
	cfg.Archive.ScratchDir = strings.TrimSpace(cfg.Archive.ScratchDir)
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	return cfg
}

func dotted(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Validate reports every invalid field of cfg.
func Validate(cfg Config) error {
	var errs []error
	if _, err := cfg.Options(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Grouping.Count < 1 {
		errs = append(errs, fmt.Errorf("grouping.count must be at least 1, got %d", cfg.Grouping.Count))
	}
	if cfg.Run.Workers < 1 {
		errs = append(errs, fmt.Errorf("run.workers must be at least 1, got %d", cfg.Run.Workers))
	}
	if _, err := log.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch cfg.Logging.Format {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text, json or logfmt, got %q", cfg.Logging.Format))
	}
	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	return errors.Join(errs...)
}

// Options converts the grouping, archive and run sections into engine options.
func (cfg Config) Options() (groupzip.Options, error) {
	rule, err := groupzip.ParseBaseNameRule(cfg.Grouping.BaseNameRule)
	if err != nil {
		return groupzip.Options{}, fmt.Errorf("grouping.base_name_rule: %w", err)
	}
	kind, err := groupzip.ParsePolicyKind(cfg.Grouping.Policy)
	if err != nil {
		return groupzip.Options{}, fmt.Errorf("grouping.policy: %w", err)
	}
	opts := groupzip.Options{
		Rule: rule,
		Policy: groupzip.Policy{
			Kind:      kind,
			Count:     cfg.Grouping.Count,
			Companion: cfg.Grouping.Companion,
		},
		Extension:     cfg.Archive.Extension,
		ScratchDir:    cfg.Archive.ScratchDir,
		RemoveMembers: cfg.Archive.RemoveMembers,
		Workers:       cfg.Run.Workers,
	}
	return opts, opts.Validate()
}
