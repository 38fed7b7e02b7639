package nb2md

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Media type identifiers as they appear in nbformat output data bundles.
const (
	mediaPNG   = "image/png"
	mediaJPEG  = "image/jpeg"
	mediaSVG   = "image/svg+xml"
	mediaHTML  = "text/html"
	mediaPlain = "text/plain"
)

// multiSource is a string field that nbformat stores either as a single
// string or as a list of fragments. Fragments are concatenated losslessly:
// no line breaks are inserted or dropped beyond what the fragments encode.
type multiSource string

func (m *multiSource) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiSource(s)
		return nil
	}

	var fragments []string
	if err := json.Unmarshal(data, &fragments); err != nil {
		return fmt.Errorf("source must be a string or list of strings")
	}
	*m = multiSource(strings.Join(fragments, ""))
	return nil
}

// Raw nbformat shapes. Only the fields the renderer consumes are decoded;
// everything else (metadata, execution counts, kernel info) is ignored.
type rawNotebook struct {
	Cells []rawCell `json:"cells"`
}

type rawCell struct {
	CellType string      `json:"cell_type"`
	Source   multiSource `json:"source"`
	Outputs  []rawOutput `json:"outputs"`
}

type rawOutput struct {
	OutputType string                     `json:"output_type"`
	Text       multiSource                `json:"text"`
	Traceback  []string                   `json:"traceback"`
	Data       map[string]json.RawMessage `json:"data"`
}

// ParseNotebook decodes an nbformat JSON document into an ordered cell
// sequence. Unknown cell types are skipped; a document without a cell list
// or a cell without a type tag is ErrMalformedNotebook.
func ParseNotebook(data []byte) (*Notebook, error) {
	if len(data) == 0 {
		return nil, ErrEmptyNotebook
	}

	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotebook, err)
	}
	if raw.Cells == nil {
		return nil, fmt.Errorf("%w: missing cell list", ErrMalformedNotebook)
	}

	nb := &Notebook{Cells: make([]Cell, 0, len(raw.Cells))}
	for i, rc := range raw.Cells {
		switch rc.CellType {
		case "":
			return nil, fmt.Errorf("%w: cell %d has no cell_type", ErrMalformedNotebook, i)
		case "markdown":
			nb.Cells = append(nb.Cells, Cell{Type: CellMarkdown, Source: string(rc.Source)})
		case "code":
			cell := Cell{Type: CellCode, Source: string(rc.Source)}
			for _, ro := range rc.Outputs {
				if out, ok := convertOutput(ro); ok {
					cell.Outputs = append(cell.Outputs, out)
				}
			}
			nb.Cells = append(nb.Cells, cell)
		default:
			// Unknown cell type: skip, keep going.
		}
	}
	return nb, nil
}

// ParseNotebookFile reads and parses a notebook from disk.
func ParseNotebookFile(path string) (*Notebook, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- notebook path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}
	return ParseNotebook(data)
}

// convertOutput maps a raw output onto the closed Output variant set.
// Unrecognized output types are dropped (ok=false).
func convertOutput(ro rawOutput) (Output, bool) {
	switch ro.OutputType {
	case "stream":
		return Output{Type: OutputStream, Text: string(ro.Text)}, true
	case "error":
		return Output{Type: OutputError, Traceback: ro.Traceback}, true
	case "execute_result", "display_data":
		return Output{Type: OutputDisplay, Data: convertDisplayData(ro.Data)}, true
	}
	return Output{}, false
}

// convertDisplayData extracts the recognized media types from a data bundle.
// Values arrive as a string or fragment list depending on the producer, so
// each goes through multiSource. Media types outside the closed set are
// dropped here; an all-empty DisplayData is skipped later by the renderer.
func convertDisplayData(data map[string]json.RawMessage) DisplayData {
	var d DisplayData
	d.PNG = decodeMediaValue(data[mediaPNG])
	d.JPEG = decodeMediaValue(data[mediaJPEG])
	d.SVG = decodeMediaValue(data[mediaSVG])
	d.HTML = decodeMediaValue(data[mediaHTML])
	d.Plain = decodeMediaValue(data[mediaPlain])
	return d
}

func decodeMediaValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var m multiSource
	if err := m.UnmarshalJSON(raw); err != nil {
		// Non-text payload (e.g. application/json objects): not part of
		// the recognized set, treat as absent.
		return ""
	}
	return string(m)
}

// RasterOutputCount returns the number of display outputs that would render
// as a raster image (PNG or JPEG present). One logical result counts once
// even when both representations are offered, matching the render priority.
func RasterOutputCount(nb *Notebook) int {
	if nb == nil {
		return 0
	}
	n := 0
	for _, cell := range nb.Cells {
		for _, out := range cell.Outputs {
			if out.Type == OutputDisplay && (out.Data.PNG != "" || out.Data.JPEG != "") {
				n++
			}
		}
	}
	return n
}
