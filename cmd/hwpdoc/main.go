// Command hwpdoc extracts structured text from HWP and HWPX documents:
// single-file mode prints to stdout, batch mode walks a directory with a
// live progress display.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/progress"

	hwp "github.com/injoon-kim/hwpdoc"
	"github.com/injoon-kim/hwpdoc/internal/batch"
	"github.com/injoon-kim/hwpdoc/internal/render"
	"github.com/injoon-kim/hwpdoc/internal/serialize"
	"github.com/injoon-kim/hwpdoc/internal/triage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "triage":
		err = runTriage(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "hwpdoc: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hwpdoc <extract|batch|triage|stats> [flags] <path>")
}

// extractFlags registers the flags shared by single-file commands that
// route through hwp.ExtractFile: the HWP 3.x converter path and whether a
// failed HWP 5.x extraction falls back to the PrvText preview stream.
func extractFlags(fs *flag.FlagSet) (converter3x *string, previewFallback *bool) {
	converter3x = fs.String("converter3x", "", "external converter for legacy HWP 3.x documents (empty rejects them)")
	previewFallback = fs.Bool("preview-fallback", true, "fall back to the PrvText preview stream when structural HWP 5.x extraction fails")
	return
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	format := fs.String("format", "text", "output format: text, tablewriter, yaml")
	converter3x, previewFallback := extractFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("extract requires a file path")
	}
	path := fs.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	kind, err := triage.Sniff(file)
	if err != nil {
		return fmt.Errorf("sniff %s: %w", path, err)
	}
	doc, err := hwp.ExtractFile(context.Background(), file, hwp.ExtractOptions{
		Converter3xPath: *converter3x,
		PreviewFallback: *previewFallback,
	})
	if err != nil {
		return err
	}

	switch *format {
	case "text":
		return render.RenderText(doc, os.Stdout)
	case "tablewriter":
		return render.RenderTextTablewriter(doc, os.Stdout)
	case "yaml":
		return serialize.WriteYAML(os.Stdout, doc, serialize.Metadata{
			Source:      path,
			Method:      kind.String(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		})
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	converter3x, previewFallback := extractFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("stats requires a file path")
	}
	path := fs.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := hwp.ExtractFile(context.Background(), file, hwp.ExtractOptions{
		Converter3xPath: *converter3x,
		PreviewFallback: *previewFallback,
	})
	if err != nil {
		return err
	}
	return render.RenderStats(doc, os.Stdout)
}

func runTriage(args []string) error {
	fs := flag.NewFlagSet("triage", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("triage requires a file path")
	}
	path := fs.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	kind, err := triage.Sniff(file)
	if err != nil {
		return err
	}
	fmt.Println(kind.String())
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	workers := fs.Int("workers", 4, "concurrent extraction workers")
	format := fs.String("format", "yaml", "per-file output format: yaml, text")
	outDir := fs.String("out", "", "directory to write per-file output into (required)")
	converter3x, previewFallback := extractFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("batch requires a root directory")
	}
	if *outDir == "" {
		return fmt.Errorf("batch requires -out")
	}
	root := fs.Arg(0)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	pw := progress.NewWriter()
	pw.SetAutoStop(true)
	pw.SetTrackerPosition(progress.PositionRight)
	go pw.Render()

	tracker := &progress.Tracker{Message: "extracting", Total: 0}
	pw.AppendTracker(tracker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := batch.Run(ctx, root, batch.Options{
		Workers:         *workers,
		Extensions:      []string{".hwp", ".hwpx"},
		Converter3xPath: *converter3x,
		PreviewFallback: *previewFallback,
		OnComplete: func(r batch.Result) {
			tracker.Increment(1)
		},
	})

	var failures int
	for res := range results {
		if res.Err != nil {
			failures++
			color.New(color.FgYellow).Printf("skip %s: %v\n", res.Path, res.Err)
			continue
		}
		if err := writeBatchResult(*outDir, res, *format); err != nil {
			failures++
			color.New(color.FgYellow).Printf("write %s: %v\n", res.Path, err)
		}
	}
	tracker.MarkAsDone()

	color.New(color.FgGreen).Printf("done, %d failure(s)\n", failures)
	return nil
}

// writeBatchResult renders a successfully extracted document into outDir,
// named after the source file's base name with the format's extension.
func writeBatchResult(outDir string, res batch.Result, format string) error {
	base := filepath.Base(res.Path)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]

	switch format {
	case "yaml":
		out, err := os.Create(filepath.Join(outDir, stem+".yaml"))
		if err != nil {
			return err
		}
		defer out.Close()
		return serialize.WriteYAML(out, res.Doc, serialize.Metadata{
			Source:      res.Path,
			Method:      res.Format.String(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		})
	case "text":
		out, err := os.Create(filepath.Join(outDir, stem+".txt"))
		if err != nil {
			return err
		}
		defer out.Close()
		return render.RenderText(res.Doc, out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
