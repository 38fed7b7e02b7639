package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("missing markdown path")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWritePreview     = errors.New("failed to write preview file")
	ErrWriteReport      = errors.New("failed to write report file")
	ErrFrontMatterParse = errors.New("failed to parse front matter")
)

// postMeta is the subset of front matter the report cares about.
type postMeta struct {
	Title string `yaml:"title"`
}

// run validates one markdown document and optionally writes a preview
// and/or a debug report. Returns the process exit code: validation findings
// set the code (invalid images exit 1) while operational failures are
// returned as errors.
func run(flags *checkFlags, args []string, out io.Writer) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%w: usage: nb2md-check <file.md> [flags]", ErrNoInput)
	}
	mdPath := args[0]

	content, err := os.ReadFile(mdPath) // #nosec G304 -- markdown path is user-provided
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	var meta postMeta
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFrontMatterParse, err)
	}

	result := nb2md.Validate(string(content))

	// Cross-reference against the source notebook when provided. A count
	// mismatch is a discrepancy in the conversion, reported like any other
	// finding; it does not abort the pass.
	if flags.notebook != "" {
		nb, err := nb2md.ParseNotebookFile(flags.notebook)
		if err != nil {
			return 0, err
		}
		result.CrossReference(nb)
	}

	report := formatReport(mdPath, meta.Title, result, flags.quiet)
	fmt.Fprint(out, report)

	if flags.preview {
		previewPath, err := writePreview(mdPath, string(body))
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "Preview HTML created: %s\n", previewPath)
		fmt.Fprintln(out, "Open this file in a browser to check if images render correctly.")
	}

	if flags.report {
		reportPath, err := writeDebugReport(mdPath, result, time.Now())
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "Debug report written: %s\n", reportPath)
	}

	if result.InvalidCount() > 0 || len(result.Errors) > 0 {
		return ExitInvalid, nil
	}
	return ExitSuccess, nil
}

// writePreview renders the markdown body to a standalone HTML file named
// <stem>_preview.html next to the source document.
func writePreview(mdPath, body string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	previewPath := filepath.Join(filepath.Dir(mdPath), stem+"_preview.html")

	html, err := nb2md.BuildPreview(context.Background(), body, filepath.Base(mdPath))
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAtomic(previewPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWritePreview, err)
	}
	return previewPath, nil
}
