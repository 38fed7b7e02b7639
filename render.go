package nb2md

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultLanguage tags code fences when no language is configured.
const DefaultLanguage = "python"

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	language string
}

// Renderer transforms a parsed notebook into a Jekyll-ready Markdown
// document. A Renderer is stateless across calls and safe to reuse.
type Renderer struct {
	cfg rendererConfig
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithLanguage).
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{cfg: rendererConfig{language: DefaultLanguage}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderState accumulates output for one Render call. The image counter is
// document-global so externalized filenames never collide within a document.
type renderState struct {
	lines      []string
	sideFiles  []SideFile
	imageIndex int
}

func (st *renderState) emit(line string) {
	st.lines = append(st.lines, line)
}

// emitBlock appends a block of text followed by the blank line separator.
func (st *renderState) emitBlock(text string) {
	st.emit(text)
	st.emit("")
}

// Render produces the Markdown document for a notebook, prepending front
// matter once and rendering each cell in order. In externalize mode the
// result carries decoded image side files; the engine itself performs no
// filesystem writes. Rendering is deterministic: identical input and
// configuration yield byte-identical output.
func (r *Renderer) Render(ctx context.Context, input Input) (*RenderResult, error) {
	if err := r.validateInput(input); err != nil {
		return nil, err
	}

	st := &renderState{}
	st.lines = append(st.lines, frontMatterLines(input.Title, input.Categories, input.Tags)...)

	for _, cell := range input.Notebook.Cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.renderCell(st, cell, input); err != nil {
			return nil, err
		}
	}

	return &RenderResult{
		Markdown:  strings.Join(st.lines, "\n"),
		SideFiles: st.sideFiles,
	}, nil
}

// validateInput checks that required fields are present and valid.
func (r *Renderer) validateInput(input Input) error {
	if input.Notebook == nil {
		return ErrNilNotebook
	}
	if err := input.Mode.Validate(); err != nil {
		return err
	}
	if input.Mode == ModeExternalize {
		if input.DocName == "" {
			return fmt.Errorf("%w: name is empty", ErrDocName)
		}
		if strings.ContainsAny(input.DocName, "/\\") {
			return fmt.Errorf("%w: %q contains path separators", ErrDocName, input.DocName)
		}
	}
	return nil
}

// renderCell dispatches on the cell type. Markdown cells pass through
// verbatim; code cells emit a fenced source block followed by each output
// in recorded order.
func (r *Renderer) renderCell(st *renderState, cell Cell, input Input) error {
	switch cell.Type {
	case CellMarkdown:
		st.emitBlock(strings.TrimRight(cell.Source, "\n"))

	case CellCode:
		code := strings.TrimRight(cell.Source, " \t\n")
		if code != "" {
			st.emitBlock("```" + r.cfg.language + "\n" + code + "\n```")
		}
		for _, out := range cell.Outputs {
			if err := r.renderOutput(st, out, input); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderOutput dispatches on the output variant. For display outputs the
// richest representation wins: PNG > JPEG > SVG > HTML > plain text.
// Exactly one representation is emitted per display output; an output
// offering none of the recognized media types is skipped silently.
func (r *Renderer) renderOutput(st *renderState, out Output, input Input) error {
	switch out.Type {
	case OutputStream:
		if text := strings.TrimRight(out.Text, " \t\n"); strings.TrimSpace(text) != "" {
			st.emitBlock("```\n" + text + "\n```")
		}

	case OutputError:
		if len(out.Traceback) > 0 {
			st.emitBlock("```" + r.cfg.language + "\n" + strings.Join(out.Traceback, "\n") + "\n```")
		}

	case OutputDisplay:
		switch d := out.Data; {
		case d.PNG != "":
			return r.renderRaster(st, "png", d.PNG, input)
		case d.JPEG != "":
			return r.renderRaster(st, "jpeg", d.JPEG, input)
		case d.SVG != "":
			st.emitBlock(strings.TrimRight(d.SVG, "\n"))
		case d.HTML != "":
			st.emitBlock(strings.TrimRight(d.HTML, "\n"))
		case d.Plain != "":
			if text := strings.TrimRight(d.Plain, " \t\n"); strings.TrimSpace(text) != "" {
				st.emitBlock("```\n" + text + "\n```")
			}
		}
		// All representations empty: unsupported media bundle, skip.
	}
	return nil
}

// renderRaster emits one raster image and advances the document-global
// image counter. Embed mode inlines a data URI; externalize mode decodes
// the payload into a side file and references it by relative path.
func (r *Renderer) renderRaster(st *renderState, subtype, payload string, input Input) error {
	// Base64 stored in notebooks is frequently wrapped across lines.
	// A data URI must be a single line or renderers treat the payload as
	// truncated, so every CR and LF is stripped before use.
	clean := stripLineBreaks(payload)

	switch input.Mode {
	case ModeEmbed:
		st.emitBlock(fmt.Sprintf("![output](data:image/%s;base64,%s)", subtype, clean))

	case ModeExternalize:
		data, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return fmt.Errorf("%w: image %d: %v", ErrImageDecode, st.imageIndex, err)
		}
		name := fmt.Sprintf("%s/%d.%s", input.DocName, st.imageIndex, rasterExt(subtype))
		st.sideFiles = append(st.sideFiles, SideFile{Name: name, Data: data})
		st.emitBlock(fmt.Sprintf("![output](%s)", name))
	}

	st.imageIndex++
	return nil
}

// stripLineBreaks removes CR and LF from a base64 payload.
func stripLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// rasterExt maps an image subtype to its conventional file extension.
func rasterExt(subtype string) string {
	if subtype == "jpeg" {
		return "jpg"
	}
	return subtype
}
