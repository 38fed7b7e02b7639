package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// minimalNotebook returns nbformat JSON with one markdown cell, one code
// cell with stream output, and one PNG display output.
func minimalNotebook() string {
	png := base64.StdEncoding.EncodeToString(
		[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'})
	return fmt.Sprintf(`{"cells": [
		{"cell_type": "markdown", "source": "# Demo"},
		{"cell_type": "code", "source": "print(1)", "outputs": [
			{"output_type": "stream", "text": "1\n"},
			{"output_type": "display_data", "data": {"image/png": %q}}
		]}
	]}`, png)
}

func writeNotebook(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(minimalNotebook()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunEmbed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "first-look.ipynb")
	outPath := filepath.Join(dir, "out.md")

	var out strings.Builder
	flags := &convertFlags{output: outPath}

	if err := run(flags, []string{nbPath}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	got := string(content)

	for _, want := range []string{
		`title: "First Look"`, // derived from the filename stem
		"categories: coding",
		"tag: [python, jupyter]",
		"# Demo",
		"```python\nprint(1)\n```",
		"data:image/png;base64,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if !strings.Contains(out.String(), "Converted notebook to:") {
		t.Errorf("progress message missing, got %q", out.String())
	}
}

func TestRunExtractImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "demo.ipynb")
	outPath := filepath.Join(dir, "posts", "demo.md")

	var out strings.Builder
	flags := &convertFlags{
		output:  outPath,
		extract: true,
		set:     map[string]bool{"extract-images": true},
	}

	if err := run(flags, []string{nbPath}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	imgPath := filepath.Join(dir, "posts", "demo", "0.png")
	data, err := os.ReadFile(imgPath)
	if err != nil {
		t.Fatalf("side file not written: %v", err)
	}
	if len(data) == 0 || data[0] != 0x89 {
		t.Errorf("side file does not hold decoded PNG bytes")
	}

	content, _ := os.ReadFile(outPath)
	if !strings.Contains(string(content), "![output](demo/0.png)") {
		t.Errorf("markdown does not reference the side file:\n%s", content)
	}
	if strings.Contains(string(content), "data:image") {
		t.Errorf("extract mode leaked a data URI")
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantCode int
	}{
		{
			name:     "no positional argument",
			args:     nil,
			wantErr:  ErrNoInput,
			wantCode: ExitUsage,
		},
		{
			name:     "wrong extension",
			args:     []string{"notes.txt"},
			wantErr:  ErrNotebookExtension,
			wantCode: ExitUsage,
		},
		{
			name:     "missing notebook file",
			args:     []string{"absent.ipynb"},
			wantErr:  os.ErrNotExist,
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out strings.Builder
			err := run(&convertFlags{}, tt.args, &out)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestRunMalformedNotebook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := filepath.Join(dir, "broken.ipynb")
	if err := os.WriteFile(nbPath, []byte(`{"metadata": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.md")

	var out strings.Builder
	err := run(&convertFlags{output: outPath}, []string{nbPath}, &out)
	if err == nil {
		t.Fatal("expected error for malformed notebook")
	}
	if got := exitCodeFor(err); got != ExitData {
		t.Errorf("exitCodeFor() = %d, want %d", got, ExitData)
	}

	// A failed conversion emits no Markdown file at all.
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("partial markdown file written for a failed conversion")
	}
}

func TestRunQuiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nbPath := writeNotebook(t, dir, "demo.ipynb")

	var out strings.Builder
	flags := &convertFlags{output: filepath.Join(dir, "out.md"), quiet: true}

	if err := run(flags, []string{nbPath}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("quiet run produced output: %q", out.String())
	}
}

func TestTitleFromStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stem string
		want string
	}{
		{"first-look", "First Look"},
		{"data_analysis_2024", "Data Analysis 2024"},
		{"single", "Single"},
		{"mixed-sep_arators", "Mixed Sep Arators"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.stem, func(t *testing.T) {
			t.Parallel()

			if got := titleFromStem(tt.stem); got != tt.want {
				t.Errorf("titleFromStem(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, args, err := parseFlags([]string{
		"nb2md", "analysis.ipynb",
		"-o", "out.md",
		"-t", "My Title",
		"--tags", "go,notebooks",
		"--extract-images",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(args) != 1 || args[0] != "analysis.ipynb" {
		t.Errorf("args = %v, want [analysis.ipynb]", args)
	}
	if flags.output != "out.md" {
		t.Errorf("output = %q, want %q", flags.output, "out.md")
	}
	if flags.title != "My Title" {
		t.Errorf("title = %q, want %q", flags.title, "My Title")
	}
	if len(flags.tags) != 2 || flags.tags[0] != "go" || flags.tags[1] != "notebooks" {
		t.Errorf("tags = %v, want [go notebooks]", flags.tags)
	}
	if !flags.extract {
		t.Error("extract = false, want true")
	}
	if !flags.set["tags"] || !flags.set["extract-images"] {
		t.Errorf("set = %v, explicit flags not tracked", flags.set)
	}
	if flags.set["categories"] {
		t.Error("set tracks a flag that was not given")
	}
}
