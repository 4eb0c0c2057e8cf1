// Package batch walks a directory tree, triages each file, and extracts
// matching documents across a bounded worker pool. One file's failure
// never aborts the batch: every result, success or failure, is delivered
// independently on the results channel.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	oerrors "github.com/olekukonko/errors"
	"github.com/olekukonko/ll"

	hwp "github.com/injoon-kim/hwpdoc"
	"github.com/injoon-kim/hwpdoc/internal/document"
	"github.com/injoon-kim/hwpdoc/internal/triage"
)

// Result is one file's outcome.
type Result struct {
	Path   string
	Format triage.Format
	Doc    *document.Document
	Err    error
}

// Options configures a Run call.
type Options struct {
	// Workers bounds concurrent extractions. Zero selects 4.
	Workers int
	// Extensions restricts which file extensions are considered, matched
	// case-insensitively (e.g. []string{".hwp", ".hwpx"}). Empty means
	// every regular file is triaged.
	Extensions []string
	// Converter3xPath and PreviewFallback are passed straight through to
	// hwp.ExtractFile for every file in the batch.
	Converter3xPath string
	PreviewFallback bool
	// OnComplete, if set, is invoked once per file as its Result is sent,
	// letting a caller drive a progress display without consuming the
	// results channel itself.
	OnComplete func(Result)
}

var log = ll.New("batch")

// Run walks root, triages and extracts every matching file, and streams a
// Result per file on the returned channel. The channel is closed once
// every file has been processed or ctx is cancelled.
func Run(ctx context.Context, root string, opts Options) <-chan Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	paths := make(chan string)
	results := make(chan Result)

	go func() {
		defer close(paths)
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				log.Error("walk %s: %v", path, err)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !matchesExtension(path, opts.Extensions) {
				return nil
			}
			select {
			case paths <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case path, ok := <-paths:
					if !ok {
						return
					}
					res := extractOne(ctx, path, opts)
					if opts.OnComplete != nil {
						opts.OnComplete(res)
					}
					results <- res
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func matchesExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func extractOne(ctx context.Context, path string, opts Options) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Path: path, Format: res.Format, Err: oerrors.Newf("batch: panic extracting %s: %v", path, p)}
			log.Error("%s: %v", path, res.Err)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path, Err: oerrors.Wrap(err, "open")}
	}
	defer f.Close()

	format, err := triage.Sniff(f)
	if err != nil {
		return Result{Path: path, Err: oerrors.Wrap(err, "sniff")}
	}
	if format == triage.Unknown {
		return Result{Path: path, Format: format, Err: oerrors.Newf("batch: unsupported or unrecognized format: %s", path)}
	}

	doc, err := hwp.ExtractFile(ctx, f, hwp.ExtractOptions{
		Converter3xPath: opts.Converter3xPath,
		PreviewFallback: opts.PreviewFallback,
	})
	if err != nil {
		err = oerrors.Wrap(err, "extract")
		log.Error("%s: %v", path, err)
	}
	return Result{Path: path, Format: format, Doc: doc, Err: err}
}
