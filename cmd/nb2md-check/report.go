package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	nb2md "github.com/alnah/go-nb2md"
	"github.com/alnah/go-nb2md/internal/fileutil"
	"github.com/alnah/go-nb2md/internal/yamlutil"
)

const reportRule = "============================================================"

// formatReport renders the human-readable validation report. With quiet set,
// per-image detail is omitted and only the summary remains.
func formatReport(mdPath, title string, result *nb2md.ValidationResult, quiet bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", reportRule)
	fmt.Fprintf(&b, "Validating: %s\n", mdPath)
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	fmt.Fprintf(&b, "%s\n\n", reportRule)

	if !quiet {
		for _, img := range result.Images {
			fmt.Fprintf(&b, "Image %d/%d (%s):\n", img.Index, len(result.Images), img.Subtype)
			if img.HasLineBreaks {
				fmt.Fprintf(&b, "  FAIL payload contains line break characters\n")
			}
			if img.DecodeOK {
				fmt.Fprintf(&b, "  ok   valid base64 data\n")
				fmt.Fprintf(&b, "  ok   size: %.2f KB\n", float64(img.DecodedSize)/1024)
			} else {
				fmt.Fprintf(&b, "  FAIL payload is not valid base64\n")
			}
			if img.DecodeOK {
				if img.SignatureOK {
					fmt.Fprintf(&b, "  ok   valid %s signature\n", img.Subtype)
				} else {
					fmt.Fprintf(&b, "  FAIL invalid %s signature\n", img.Subtype)
				}
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "SUMMARY\n")
	fmt.Fprintf(&b, "%s\n", reportRule)
	fmt.Fprintf(&b, "Total images found: %d\n", len(result.Images))
	fmt.Fprintf(&b, "Valid images: %d\n", result.ValidCount())
	fmt.Fprintf(&b, "Invalid images: %d\n", result.InvalidCount())

	if total := result.TotalDecodedBytes(); total > 0 {
		kb := float64(total) / 1024
		fmt.Fprintf(&b, "\nTotal image size: %.2f KB (%.2f MB)\n", kb, kb/1024)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\nERRORS FOUND:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	} else {
		fmt.Fprintf(&b, "\nAll images are valid\n")
	}
	fmt.Fprintf(&b, "%s\n\n", reportRule)

	return b.String()
}

// reportSummary is the machine-readable block appended to debug reports.
type reportSummary struct {
	Document      string   `yaml:"document"`
	GeneratedAt   string   `yaml:"generatedAt"`
	TotalImages   int      `yaml:"totalImages"`
	ValidImages   int      `yaml:"validImages"`
	InvalidImages int      `yaml:"invalidImages"`
	TotalBytes    int      `yaml:"totalBytes"`
	Errors        []string `yaml:"errors,omitempty"`
}

// writeDebugReport writes the full report plus a YAML summary block to a
// timestamped file next to the markdown document.
func writeDebugReport(mdPath string, result *nb2md.ValidationResult, now time.Time) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	name := fmt.Sprintf("%s_validation_%s.txt", stem, now.Format("20060102-150405"))
	reportPath := filepath.Join(filepath.Dir(mdPath), name)

	summary := reportSummary{
		Document:      mdPath,
		GeneratedAt:   now.Format(time.RFC3339),
		TotalImages:   len(result.Images),
		ValidImages:   result.ValidCount(),
		InvalidImages: result.InvalidCount(),
		TotalBytes:    result.TotalDecodedBytes(),
		Errors:        result.Errors,
	}
	yamlBlock, err := yamlutil.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteReport, err)
	}

	var b strings.Builder
	b.WriteString(formatReport(mdPath, "", result, false))
	b.WriteString("--- summary ---\n")
	b.Write(yamlBlock)

	if err := fileutil.WriteFileAtomic(reportPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteReport, err)
	}
	return reportPath, nil
}
