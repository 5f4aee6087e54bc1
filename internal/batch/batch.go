// Package batch runs the agreement pipeline over a directory: every PDF is
// hashed, skipped when the ledger already knows it, otherwise its fields
// are extracted, an output folder is created, the letter template is
// filled, and the PDF is moved into the folder. One bad document never
// stops the run; failures are counted and logged per file.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DenisZol/Agreem-make-dir/internal/ledger"
	"github.com/DenisZol/Agreem-make-dir/internal/pdftext"
	"github.com/DenisZol/Agreem-make-dir/pkg/agreement"
	"github.com/DenisZol/Agreem-make-dir/pkg/docfill"
)

// PageExtractor turns a source file into page text. The default shells out
// to pdftotext; tests substitute a plain-text reader.
type PageExtractor func(ctx context.Context, path string) (agreement.PageSource, error)

// DefaultExtractor reads pages through pdftotext.
func DefaultExtractor(ctx context.Context, path string) (agreement.PageSource, error) {
	return pdftext.Pdftotext(ctx, path)
}

// Options configures one run.
type Options struct {
	// SourceDir is scanned (non-recursively) for *.pdf files.
	SourceDir string
	// Template is the letter template filled for every agreement.
	Template string
	// LedgerPath is the SQLite ledger file; empty means SourceDir/processed.db.
	LedgerPath string
	// DryRun extracts and reports but writes nothing and moves nothing.
	DryRun bool
	// Extract overrides the page extractor; nil means DefaultExtractor.
	Extract PageExtractor
}

// Summary counts the outcome of a run.
type Summary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Runner executes the pipeline. Create it with New, run it once with Run.
type Runner struct {
	opts    Options
	ledger  *ledger.Ledger
	extract PageExtractor
	log     *docfill.Logger
}

func New(opts Options) (*Runner, error) {
	if opts.SourceDir == "" {
		return nil, fmt.Errorf("source directory is required")
	}
	if opts.Template == "" {
		return nil, fmt.Errorf("template path is required")
	}
	if opts.LedgerPath == "" {
		opts.LedgerPath = filepath.Join(opts.SourceDir, "processed.db")
	}

	l, err := ledger.Open(opts.LedgerPath)
	if err != nil {
		return nil, err
	}

	extract := opts.Extract
	if extract == nil {
		extract = DefaultExtractor
	}

	return &Runner{
		opts:    opts,
		ledger:  l,
		extract: extract,
		log:     docfill.GetLogger(),
	}, nil
}

func (r *Runner) Close() error {
	return r.ledger.Close()
}

// Run processes every PDF in the source directory in name order.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	files, err := r.sourceFiles()
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		log := r.log.WithField("file", filepath.Base(path))
		switch outcome, err := r.processOne(ctx, path); {
		case err != nil:
			log.Error("processing failed: %v", err)
			s.Failed++
		case outcome == skipped:
			log.Info("skipped")
			s.Skipped++
		default:
			log.Info("processed")
			s.Processed++
		}
	}
	return s, nil
}

type outcome int

const (
	processed outcome = iota
	skipped
)

func (r *Runner) processOne(ctx context.Context, path string) (outcome, error) {
	hash, err := ledger.HashFile(path)
	if err != nil {
		return 0, err
	}

	seen, err := r.ledger.Seen(ctx, hash)
	if err != nil {
		return 0, err
	}
	if seen {
		return skipped, nil
	}

	pages, err := r.extract(ctx, path)
	if err != nil {
		return 0, err
	}

	fields, err := agreement.Extract(pages)
	if err != nil {
		return 0, err
	}

	folder := filepath.Join(r.opts.SourceDir, agreement.FolderName(fields))
	if _, err := os.Stat(folder); err == nil {
		return skipped, nil
	}

	if r.opts.DryRun {
		r.log.Info("would create %s", folder)
		return processed, nil
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return 0, err
	}

	if err := r.fillLetter(fields, filepath.Join(folder, agreement.LetterName(fields))); err != nil {
		return 0, err
	}

	if err := os.Rename(path, filepath.Join(folder, filepath.Base(path))); err != nil {
		return 0, fmt.Errorf("move source: %w", err)
	}

	err = r.ledger.Record(ctx, ledger.Entry{
		SourceHash: hash,
		CaseNum:    fields.CaseNum,
		Folder:     filepath.Base(folder),
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

func (r *Runner) fillLetter(fields *agreement.Fields, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		// A letter written by an earlier, interrupted run stays as-is.
		return nil
	}

	doc, err := docfill.OpenFile(r.opts.Template)
	if err != nil {
		return err
	}
	if err := doc.ReplaceAll(agreement.Tokens(fields)); err != nil {
		return err
	}
	return doc.Save(dest)
}

func (r *Runner) sourceFiles() ([]string, error) {
	entries, err := os.ReadDir(r.opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(r.opts.SourceDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
