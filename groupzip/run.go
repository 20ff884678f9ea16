package groupzip

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Skip records a group the policy did not select.
type Skip struct {
	BaseName string     `json:"base_name"`
	Reason   SkipReason `json:"reason"`
	Members  int        `json:"members"`
}

// Result is the outcome of one Run. Archives are ordered by base name.
type Result struct {
	Directory string
	Archives  []string
	Count     int
	Skipped   []Skip
	Failures  []*GroupArchiveError
}

// Err joins the failures of the run, or returns nil when every selected group
// was archived.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Run archives every group under dir that the policy selects. Only a failure
// to read dir is returned as an error; a group that fails is recorded in
// Result.Failures and the remaining groups are still processed.
//
// Cancelling ctx stops new groups from starting. Groups that never started are
// reported as failures carrying ctx.Err().
func Run(ctx context.Context, dir string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	groups, err := Plan(dir, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Directory: dir}
	var selected []Group
	for _, g := range groups {
		if !g.Selected {
			res.Skipped = append(res.Skipped, Skip{BaseName: g.BaseName, Reason: g.Skip, Members: len(g.Members)})
			opts.Logger.Debug("skipped group", "base", g.BaseName, "reason", g.Skip, "members", len(g.Members))
			continue
		}
		selected = append(selected, g)
	}

	type outcome struct {
		path string
		err  error
	}
	outcomes := make([]outcome, len(selected))

	var eg errgroup.Group
	eg.SetLimit(opts.Workers)
	for i, g := range selected {
		if err := ctx.Err(); err != nil {
			outcomes[i].err = &GroupArchiveError{BaseName: g.BaseName, Op: OpCreate, Err: err}
			continue
		}
		eg.Go(func() error {
			path, err := ArchiveGroup(ctx, dir, g.BaseName, g.Members, opts)
			outcomes[i] = outcome{path: path, err: err}
			return nil
		})
	}
	_ = eg.Wait()

	for i, o := range outcomes {
		if o.path != "" {
			res.Archives = append(res.Archives, o.path)
		}
		if o.err == nil {
			continue
		}
		var gerr *GroupArchiveError
		if !errors.As(o.err, &gerr) {
			gerr = &GroupArchiveError{BaseName: selected[i].BaseName, Op: OpCreate, Err: o.err}
		}
		res.Failures = append(res.Failures, gerr)
		opts.Logger.Warn("group failed", "base", gerr.BaseName, "op", gerr.Op, "err", gerr.Err)
	}
	res.Count = len(res.Archives)

	opts.Logger.Info("run complete",
		"dir", dir,
		"policy", opts.Policy.String(),
		"archived", res.Count,
		"skipped", len(res.Skipped),
		"failed", len(res.Failures),
	)
	return res, nil
}
