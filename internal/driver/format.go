package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lumos/internal/format"
	"lumos/internal/source"
)

// FormatOptions controls a batch formatting run.
type FormatOptions struct {
	// Check reports whether files would change without writing anything.
	Check bool
	// Stdout suppresses write-back; the caller prints Formatted itself.
	Stdout bool
	// Jobs caps worker parallelism. Zero means GOMAXPROCS.
	Jobs int
	// Options is passed through to the formatter.
	Options format.Options
	// Events, when non-nil, receives per-file progress. The channel is not
	// closed by FormatPaths.
	Events chan<- Event
}

// FormatResult is the outcome for a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Formatted string
	Err       error
}

// FormatPaths formats every schema file reachable from paths. Results are
// ordered by path. Per-file failures are recorded in the result rather than
// aborting the batch; only context cancellation stops the run early.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := CollectSchemaFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexed slots, one per goroutine; no mutex needed.
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Events, Event{Kind: EventStart, Path: path})

			if loadErr, ok := loadErrors[path]; ok {
				results[i] = FormatResult{Path: path, Err: loadErr}
				emit(opts.Events, Event{Kind: EventFailed, Path: path, Err: loadErr})
				return nil
			}

			file := fileSet.Get(fileIDs[path])
			original := string(file.Content)
			formatted := format.Format(original, opts.Options)
			changed := formatted != original

			res := FormatResult{Path: path, Changed: changed, Formatted: formatted}
			if changed && !opts.Check && !opts.Stdout {
				if err := writeFilePreservingMode(path, []byte(formatted)); err != nil {
					res.Err = fmt.Errorf("write %s: %w", path, err)
				}
			}
			results[i] = res

			switch {
			case res.Err != nil:
				emit(opts.Events, Event{Kind: EventFailed, Path: path, Err: res.Err})
			case changed:
				emit(opts.Events, Event{Kind: EventChanged, Path: path})
			default:
				emit(opts.Events, Event{Kind: EventDone, Path: path})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
