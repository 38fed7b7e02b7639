package nb2md

import (
	"fmt"
	"strings"
)

// CellType identifies a notebook cell variant.
type CellType string

// Recognized cell types. Anything else in the source document is skipped
// during loading (forward compatibility with future nbformat cell kinds).
const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
)

// OutputType identifies a recorded execution output variant.
type OutputType string

// Recognized output types.
const (
	OutputStream  OutputType = "stream"  // console text from the kernel
	OutputError   OutputType = "error"   // formatted exception traceback
	OutputDisplay OutputType = "display" // execute_result / display_data bundle
)

// Notebook is an ordered, read-only sequence of cells parsed from an
// already-executed notebook document. Cell order is preserved verbatim
// through rendering.
type Notebook struct {
	Cells []Cell
}

// Cell is one unit of notebook content: narrative Markdown or executable
// source plus its recorded outputs.
type Cell struct {
	Type    CellType
	Source  string   // fragments concatenated losslessly at load time
	Outputs []Output // code cells only, in execution order
}

// Output is one recorded result of having executed a code cell.
// Exactly one of Text, Traceback, or Data is meaningful, selected by Type.
type Output struct {
	Type      OutputType
	Text      string      // OutputStream
	Traceback []string    // OutputError, line order preserved
	Data      DisplayData // OutputDisplay
}

// DisplayData holds the alternative representations a display output offers
// for one logical result. Raster payloads (PNG, JPEG) are base64 text exactly
// as stored in the source document; SVG, HTML, and Plain are UTF-8 text.
// Rendering picks exactly one representation by fixed priority:
// PNG > JPEG > SVG > HTML > Plain.
type DisplayData struct {
	PNG   string
	JPEG  string
	SVG   string
	HTML  string
	Plain string
}

// Empty reports whether the display output carries no recognized media type.
// Such outputs are skipped silently rather than aborting the document.
func (d DisplayData) Empty() bool {
	return d.PNG == "" && d.JPEG == "" && d.SVG == "" && d.HTML == "" && d.Plain == ""
}

// Mode selects the image embedding strategy.
type Mode string

// Embedding strategies.
const (
	// ModeEmbed inlines every raster image as a single-line base64 data URI.
	ModeEmbed Mode = "embed"
	// ModeExternalize emits each raster image as a named side file and
	// references it by relative path.
	ModeExternalize Mode = "externalize"
)

// Validate checks that the mode is a known strategy.
// The zero value is invalid; callers pick a strategy explicitly.
func (m Mode) Validate() error {
	switch m {
	case ModeEmbed, ModeExternalize:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
}

// Input carries per-render parameters.
type Input struct {
	Notebook   *Notebook
	Mode       Mode
	Title      string   // front matter title
	Categories string   // front matter categories line
	Tags       []string // front matter tag list
	// DocName is the document base name; externalize mode derives the side
	// file directory and filenames from it. Required in externalize mode.
	DocName string
}

// SideFile is an image artifact produced in externalize mode. The engine
// never touches the filesystem; the caller decides where and how to write.
type SideFile struct {
	Name string // relative path, e.g. "demo/0.png"
	Data []byte // decoded image bytes
}

// RenderResult holds the rendered Markdown document and any side files.
type RenderResult struct {
	Markdown  string
	SideFiles []SideFile // empty in embed mode
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLanguage sets the fence language used for code cells and error
// tracebacks (default "python").
// Panics if lang contains whitespace or backticks (programmer error).
func WithLanguage(lang string) Option {
	if strings.ContainsAny(lang, " \t\n`") {
		panic("nb2md: WithLanguage must be a bare fence info string")
	}
	return func(r *Renderer) {
		r.cfg.language = lang
	}
}
