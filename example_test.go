package nb2md_test

import (
	"context"
	"fmt"
	"strings"

	nb2md "github.com/alnah/go-nb2md"
)

// Example demonstrates converting a parsed notebook to Markdown.
func Example() {
	nb, err := nb2md.ParseNotebook([]byte(`{"cells": [
		{"cell_type": "markdown", "source": "# Hello"},
		{"cell_type": "code", "source": "print(1)", "outputs": [
			{"output_type": "stream", "text": "1\n"}
		]}
	]}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	renderer := nb2md.NewRenderer()
	result, err := renderer.Render(context.Background(), nb2md.Input{
		Notebook:   nb,
		Mode:       nb2md.ModeEmbed,
		Title:      "Hello",
		Categories: "coding",
		Tags:       []string{"python", "jupyter"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(result.Markdown, "```python") {
		fmt.Println("Markdown generated successfully")
	}
	// Output: Markdown generated successfully
}

// Example_validate demonstrates checking a rendered document's images.
func Example_validate() {
	markdown := "![output](data:image/png;base64,iVBORw0KGgo=)"

	result := nb2md.Validate(markdown)
	for _, img := range result.Images {
		fmt.Printf("image %d: subtype=%s decode=%v signature=%v\n",
			img.Index, img.Subtype, img.DecodeOK, img.SignatureOK)
	}
	// Output: image 1: subtype=png decode=true signature=false
}
