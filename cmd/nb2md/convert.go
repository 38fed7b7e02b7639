package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/config"
	"github.com/alnah/go-nb2md/internal/dateutil"
	"github.com/alnah/go-nb2md/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput           = errors.New("missing notebook path")
	ErrNotebookExtension = errors.New("file must have .ipynb extension")
	ErrWriteMarkdown     = errors.New("failed to write markdown file")
	ErrWriteImage        = errors.New("failed to write image file")
)

// run converts one notebook: resolve configuration, parse, render, write.
// The primary Markdown artifact is written atomically so a failed conversion
// leaves no partial file. Side files (externalize mode) are written one at
// a time after the Markdown; earlier side files are not rolled back when a
// later write fails.
func run(flags *convertFlags, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: usage: nb2md <notebook.ipynb> [flags]", ErrNoInput)
	}
	notebookPath := args[0]

	if ext := filepath.Ext(notebookPath); ext != ".ipynb" {
		return fmt.Errorf("%w: got %q", ErrNotebookExtension, ext)
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	nb, err := nb2md.ParseNotebookFile(notebookPath)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(notebookPath), ".ipynb")

	title := flags.title
	if title == "" {
		title = titleFromStem(stem)
	}

	outputPath, err := resolveOutputPath(flags, cfg, stem, time.Now())
	if err != nil {
		return err
	}

	mode := nb2md.ModeEmbed
	if cfg.Images.Extract {
		mode = nb2md.ModeExternalize
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "mode: %s, output: %s\n", mode, outputPath)
	}

	renderer := nb2md.NewRenderer(nb2md.WithLanguage(cfg.Source.Language))
	result, err := renderer.Render(context.Background(), nb2md.Input{
		Notebook:   nb,
		Mode:       mode,
		Title:      title,
		Categories: cfg.Post.Categories,
		Tags:       cfg.Post.Tags,
		DocName:    stem,
	})
	if err != nil {
		return err
	}

	if err := writeOutputs(outputPath, result); err != nil {
		return err
	}

	if !flags.quiet {
		fmt.Fprintf(out, "Converted notebook to: %s\n", outputPath)
		if mode == nb2md.ModeEmbed {
			fmt.Fprintln(out, "All images embedded as base64 - ready to upload")
		} else {
			fmt.Fprintf(out, "Wrote %d image file(s) under %s\n", len(result.SideFiles), stem)
		}
	}
	return nil
}

// resolveConfig merges explicit flags over the config file over built-in
// defaults. A config file is only consulted when --config is given; a
// missing file is then an error, never a silent fallback.
func resolveConfig(flags *convertFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.set["categories"] {
		cfg.Post.Categories = flags.categories
	}
	if flags.set["tags"] {
		cfg.Post.Tags = flags.tags
	}
	if flags.set["language"] {
		cfg.Source.Language = flags.language
	}
	if flags.set["extract-images"] {
		cfg.Images.Extract = flags.extract
	}
	if flags.set["date-format"] {
		cfg.Output.DateFormat = flags.dateFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveOutputPath derives the output file: an explicit --output wins,
// otherwise <dateprefix>-<stem>.md in the configured output directory.
func resolveOutputPath(flags *convertFlags, cfg *config.Config, stem string, now time.Time) (string, error) {
	if flags.output != "" {
		return flags.output, nil
	}
	prefix, err := dateutil.Format(now, cfg.Output.DateFormat)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Output.DefaultDir, prefix+"-"+stem+".md"), nil
}

// writeOutputs writes the Markdown atomically, then each side file in
// order. Each side file is opened, written completely, and closed before
// the next is begun.
func writeOutputs(outputPath string, result *nb2md.RenderResult) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
		}
	}
	if err := fileutil.WriteFileAtomic(outputPath, []byte(result.Markdown), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
	}

	// Side files live next to the Markdown so relative references resolve.
	baseDir := filepath.Dir(outputPath)
	for _, sf := range result.SideFiles {
		path := filepath.Join(baseDir, filepath.FromSlash(sf.Name))
		if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteImage, err)
		}
		if err := os.WriteFile(path, sf.Data, 0o644); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteImage, sf.Name, err)
		}
	}
	return nil
}

// titleFromStem turns a notebook filename stem into a readable title:
// separators become spaces and each word is capitalized.
func titleFromStem(stem string) string {
	words := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
