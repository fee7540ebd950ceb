package driver

import (
	"context"
	"errors"
	"fmt"

	"lumos/internal/fix"
)

// FixOptions controls a batch fix run.
type FixOptions struct {
	Check CheckOptions
	Apply fix.ApplyOptions
	// DryRun skips writing files back; the rewritten text is still returned.
	DryRun bool
}

// FixResult is the outcome for a single file.
type FixResult struct {
	Path    string
	Result  *fix.ApplyResult
	Changed bool
	Err     error
}

// FixPaths checks every schema file reachable from paths and applies the
// selected quick fixes, rewriting changed files in place.
func FixPaths(ctx context.Context, paths []string, opts FixOptions) ([]FixResult, error) {
	// Fix runs always consult the compiler; a stale cached location would
	// make the engine edit the wrong line.
	opts.Check.Cache = nil

	checks, err := CheckPaths(ctx, paths, opts.Check)
	if err != nil {
		return nil, err
	}

	results := make([]FixResult, 0, len(checks))
	for _, c := range checks {
		res := FixResult{Path: c.Path}
		if c.Err != nil {
			res.Err = c.Err
			results = append(results, res)
			continue
		}

		applied, err := fix.Apply(c.Doc, c.Bag.Items(), opts.Apply)
		res.Result = applied
		if err != nil {
			if !errors.Is(err, fix.ErrNoFixes) {
				res.Err = err
			}
			results = append(results, res)
			continue
		}

		res.Changed = applied.Changed
		if applied.Changed && !opts.DryRun {
			if err := writeFilePreservingMode(c.Path, []byte(applied.NewText)); err != nil {
				res.Err = fmt.Errorf("write %s: %w", c.Path, err)
			}
		}
		results = append(results, res)
	}
	return results, nil
}
