// Package nb2md converts executed Jupyter notebooks to Jekyll-ready
// Markdown documents and validates the image encoding of the result.
//
// # Quick Start
//
// Parse a notebook, render it, and write the Markdown:
//
//	nb, err := nb2md.ParseNotebookFile("analysis.ipynb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	renderer := nb2md.NewRenderer()
//	result, err := renderer.Render(ctx, nb2md.Input{
//	    Notebook:   nb,
//	    Mode:       nb2md.ModeEmbed,
//	    Title:      "My Analysis",
//	    Categories: "coding",
//	    Tags:       []string{"python", "jupyter"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("analysis.md", []byte(result.Markdown), 0644)
//
// # Rendering Pipeline
//
// Conversion follows these stages:
//
//  1. Notebook parsing into an ordered, typed cell sequence
//  2. Per-cell dispatch (markdown passthrough, fenced code blocks)
//  3. Per-output dispatch with a fixed media-type priority:
//     PNG > JPEG > SVG > HTML > plain text
//  4. Image embedding as single-line base64 data URIs, or extraction to
//     side files in externalize mode
//
// The renderer never executes notebook code; it only renders results that
// were recorded when the notebook last ran.
//
// # Image Strategies
//
// ModeEmbed (the default in the CLI) inlines every raster image as a data
// URI, producing a single self-contained file. ModeExternalize decodes each
// image into a side file named <doc>/<index>.<ext> and references it by
// relative path; the engine returns the side files as bytes and leaves all
// filesystem writes to the caller.
//
// # Validation
//
// Validate scans a finished Markdown document for embedded images and
// reports per-image diagnostics (line breaks inside the payload, base64
// decode failures, magic-signature mismatches):
//
//	result := nb2md.Validate(markdownText)
//	for _, img := range result.Images {
//	    fmt.Println(img.Subtype, img.Valid())
//	}
//
// BuildPreview produces a standalone HTML document for checking embedded
// images in a browser without a site build.
package nb2md
