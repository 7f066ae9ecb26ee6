package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"quill/internal/diag"
	"quill/internal/group"
	"quill/internal/lexer"
	"quill/internal/source"
)

// Stage identifies a check pipeline phase for progress reporting.
type Stage uint8

const (
	StageLoad Stage = iota
	StageTokenize
	StageGroup
)

// Status is the state of a file within a stage.
type Status uint8

const (
	StatusStart Status = iota
	StatusDone
	StatusError
)

// Event is one progress notification from CheckDir. File is "" for
// batch-level events.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// DeclSummary is one top-level declaration found in a checked file.
type DeclSummary struct {
	Kind string
	Name string
}

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Decls  []DeclSummary
	// Errors/Warnings are the totals, also valid when served from cache.
	Errors   int
	Warnings int
	// FromCache means grouping was skipped because the content hash matched
	// a cached outline.
	FromCache bool
}

// CheckOptions configures a CheckDir run.
type CheckOptions struct {
	MaxDiagnostics int
	// Jobs caps worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, lets unchanged files skip tokenize+group.
	Cache *DiskCache
	// Events receives progress notifications; CheckDir closes it when done.
	Events chan<- Event
}

// ListContentFiles returns the sorted *.ts files under dir.
func ListContentFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ts") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir tokenizes and groups every content file under dir in parallel and
// reports per-file declaration summaries and diagnostics. Result order
// matches the sorted file order regardless of scheduling.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}

	files, err := ListContentFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially: FileSet mutation is not synchronized, and I/O is
	// not where the time goes.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusStart})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusError})
			continue
		}
		fileIDs[path] = fileID
		emit(opts.Events, Event{File: path, Stage: StageLoad, Status: StatusDone})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	// one slot per file, so workers never share an index
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = CheckResult{Path: path, Bag: bag, Errors: 1}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)
			results[i] = checkFile(file, path, bag, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// checkFile runs tokenize+group for one preloaded file, consulting the
// outline cache first.
func checkFile(file *source.File, path string, bag *diag.Bag, opts CheckOptions) CheckResult {
	if payload, ok := cacheLookup(opts.Cache, file); ok {
		emit(opts.Events, Event{File: path, Stage: StageGroup, Status: StatusDone})
		return CheckResult{
			Path:      path,
			FileID:    file.ID,
			Bag:       bag,
			Decls:     payload.Decls,
			Errors:    payload.Errors,
			Warnings:  payload.Warnings,
			FromCache: true,
		}
	}

	rep := diag.BagReporter{Bag: bag}

	emit(opts.Events, Event{File: path, Stage: StageTokenize, Status: StatusStart})
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	emit(opts.Events, Event{File: path, Stage: StageTokenize, Status: StatusDone})

	emit(opts.Events, Event{File: path, Stage: StageGroup, Status: StatusStart})
	tree := group.Build(file, tokens, rep)

	decls := summarize(tree)
	errs, warns := tally(bag)

	status := StatusDone
	if errs > 0 {
		status = StatusError
	}
	emit(opts.Events, Event{File: path, Stage: StageGroup, Status: status})

	cacheStore(opts.Cache, file, decls, errs, warns)
	return CheckResult{
		Path:     path,
		FileID:   file.ID,
		Bag:      bag,
		Decls:    decls,
		Errors:   errs,
		Warnings: warns,
	}
}

// summarize flattens the tree's top-level declarations.
func summarize(tree *group.Tree) []DeclSummary {
	children := tree.Get(tree.Root()).Children
	decls := make([]DeclSummary, 0, len(children))
	for _, id := range children {
		g := tree.Get(id)
		decls = append(decls, DeclSummary{Kind: g.Kind.String(), Name: g.Name})
	}
	return decls
}

func tally(bag *diag.Bag) (errs, warns int) {
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warns++
		}
	}
	return errs, warns
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
