package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lumos/internal/diag"
	"lumos/internal/fix"
	"lumos/internal/locate"
	"lumos/internal/source"
	"lumos/internal/validator"
)

// DefaultMaxDiagnostics bounds the per-file bag when the caller does not.
const DefaultMaxDiagnostics = 100

// CheckOptions controls a batch check run.
type CheckOptions struct {
	// Validator configures the external compiler invocation.
	Validator validator.Config
	// RawErrorText, when non-empty, is used as the compiler output for every
	// file instead of invoking the compiler. Useful for piping saved logs.
	RawErrorText string
	// Cache, when non-nil, short-circuits checks of unchanged files.
	// Ignored when RawErrorText is set.
	Cache *DiskCache
	// MaxDiagnostics caps each file's bag. Zero means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Jobs caps worker parallelism. Zero means GOMAXPROCS.
	Jobs int
	// Events, when non-nil, receives per-file progress.
	Events chan<- Event
	// BaseDir anchors relative display paths; empty means the working
	// directory.
	BaseDir string
	// PathMode renders DisplayPath: "auto", "absolute", "relative" or
	// "basename". Empty means "auto".
	PathMode string
}

// CheckResult is the outcome for a single file.
type CheckResult struct {
	Path        string
	DisplayPath string
	Doc         *source.Document
	Bag         *diag.Bag
	FromCache   bool
	Err         error
}

// CheckPaths checks every schema file reachable from paths, locating the
// compiler's complaint in each file and attaching quick fixes. Results are
// ordered by path.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	files, err := CollectSchemaFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}

	pathMode := opts.PathMode
	if pathMode == "" {
		pathMode = "auto"
	}

	fileSet := source.NewFileSetWithBase(opts.BaseDir)
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

	results := make([]CheckResult, len(files))

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
				results[i] = CheckResult{Path: path, DisplayPath: path, Err: loadErr}
				emit(opts.Events, Event{Kind: EventFailed, Path: path, Err: loadErr})
				return nil
			}

			file := fileSet.Get(fileIDs[path])
			res := checkFile(gctx, file, path, maxDiag, opts)
			res.DisplayPath = file.FormatPath(pathMode, fileSet.BaseDir())
			results[i] = res

			switch {
			case res.Err != nil:
				emit(opts.Events, Event{Kind: EventFailed, Path: path, Err: res.Err})
			case res.Bag.HasErrors():
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

func checkFile(ctx context.Context, file *source.File, path string, maxDiag int, opts CheckOptions) CheckResult {
	doc := file.Document()
	bag := diag.NewBag(maxDiag)
	res := CheckResult{Path: path, Doc: doc, Bag: bag}

	useCache := opts.Cache != nil && opts.RawErrorText == ""
	if useCache {
		var payload CheckPayload
		hit, err := opts.Cache.Get(file.Hash, &payload)
		if err == nil && hit {
			res.FromCache = true
			if payload.HasDiagnostic {
				d := diagnosticFromPayload(&payload)
				d.Fixes = fix.Propose(doc, d)
				bag.Add(d)
			}
			return res
		}
		// Cache read errors fall through to a fresh check.
	}

	raw := opts.RawErrorText
	if raw == "" {
		vres, err := validator.Run(ctx, opts.Validator, path)
		if err != nil {
			res.Err = err
			return res
		}
		if vres.HasError {
			raw = vres.Output
		}
	}

	var payload CheckPayload
	payload.Schema = diskCacheSchemaVersion
	if raw != "" {
		if d, ok := locate.Diagnose(raw, doc); ok {
			d.Fixes = fix.Propose(doc, d)
			bag.Add(d)
			payload = payloadFromDiagnostic(d)
		}
	}
	if useCache {
		// Best effort; a failed write only costs a recheck next time.
		_ = opts.Cache.Put(file.Hash, &payload)
	}
	return res
}

func payloadFromDiagnostic(d diag.Diagnostic) CheckPayload {
	return CheckPayload{
		Schema:        diskCacheSchemaVersion,
		HasDiagnostic: true,
		Code:          uint16(d.Code),
		Message:       d.Message,
		StartLine:     d.Range.Start.Line,
		StartCol:      d.Range.Start.Col,
		EndLine:       d.Range.End.Line,
		EndCol:        d.Range.End.Col,
	}
}

func diagnosticFromPayload(p *CheckPayload) diag.Diagnostic {
	rng := source.Range{
		Start: source.Position{Line: p.StartLine, Col: p.StartCol},
		End:   source.Position{Line: p.EndLine, Col: p.EndCol},
	}
	return diag.NewError(diag.Code(p.Code), rng, p.Message)
}
