package nb2md

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
)

// dataURIPattern locates embedded raster images in rendered Markdown.
// The payload capture is deliberately loose ([^)]+ instead of a base64
// character class) so that corrupted payloads, including ones an editor
// wrapped across lines, are still found and diagnosed rather than missed.
var dataURIPattern = regexp.MustCompile(`!\[[^\]]*\]\(data:image/(png|jpeg|jpg);base64,([^)]+)\)`)

// Magic signatures identifying raster formats by their leading bytes.
var (
	pngSignature  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegSignature = []byte{0xff, 0xd8}
)

// ImageReport holds the per-image diagnostics for one embedded payload.
type ImageReport struct {
	Index         int    // position in document order, starting at 1
	Subtype       string // declared subtype: png, jpeg, or jpg
	PayloadLen    int    // length of the base64 text as found
	HasLineBreaks bool   // CR or LF inside the payload (always false for a correct document)
	DecodeOK      bool   // payload decodes as base64
	DecodedSize   int    // decoded byte count, 0 unless DecodeOK
	SignatureOK   bool   // decoded bytes begin with the subtype's magic signature
}

// Valid reports whether the image passed every check.
func (r ImageReport) Valid() bool {
	return !r.HasLineBreaks && r.DecodeOK && r.SignatureOK
}

// ValidationResult aggregates the reports for one validation pass.
// A defective image never aborts the pass; the result always covers every
// image found.
type ValidationResult struct {
	Images []ImageReport
	Errors []string // human-readable defect descriptions, document order
}

// ValidCount returns the number of images that passed every check.
func (v *ValidationResult) ValidCount() int {
	n := 0
	for _, img := range v.Images {
		if img.Valid() {
			n++
		}
	}
	return n
}

// InvalidCount returns the number of images that failed any check.
func (v *ValidationResult) InvalidCount() int {
	return len(v.Images) - v.ValidCount()
}

// TotalDecodedBytes sums the decoded sizes of all successfully decoded images.
func (v *ValidationResult) TotalDecodedBytes() int {
	n := 0
	for _, img := range v.Images {
		n += img.DecodedSize
	}
	return n
}

// Validate scans previously generated Markdown for embedded base64 images
// and checks each payload's integrity independent of the renderer that
// produced it. This guards against corruption introduced by intervening
// text processing, such as an editor normalizing line endings inside a
// data URI. The input is never modified.
func Validate(markdown string) *ValidationResult {
	result := &ValidationResult{}

	for i, m := range dataURIPattern.FindAllStringSubmatch(markdown, -1) {
		report := inspectImage(i+1, m[1], m[2])
		result.Images = append(result.Images, report)

		switch {
		case report.HasLineBreaks:
			result.Errors = append(result.Errors,
				fmt.Sprintf("image %d: payload contains line break characters", report.Index))
		case !report.DecodeOK:
			result.Errors = append(result.Errors,
				fmt.Sprintf("image %d: payload is not valid base64", report.Index))
		case !report.SignatureOK:
			result.Errors = append(result.Errors,
				fmt.Sprintf("image %d: invalid %s signature", report.Index, report.Subtype))
		}
	}

	return result
}

// inspectImage runs the three integrity checks on one payload. The checks
// are independent: a payload with line breaks is still decoded (with the
// breaks removed) so the signature diagnostic remains meaningful.
func inspectImage(index int, subtype, payload string) ImageReport {
	report := ImageReport{
		Index:         index,
		Subtype:       subtype,
		PayloadLen:    len(payload),
		HasLineBreaks: bytes.ContainsAny([]byte(payload), "\r\n"),
	}

	decoded, err := base64.StdEncoding.DecodeString(stripLineBreaks(payload))
	if err != nil {
		return report
	}
	report.DecodeOK = true
	report.DecodedSize = len(decoded)
	report.SignatureOK = matchesSignature(subtype, decoded)
	return report
}

// matchesSignature checks the decoded bytes against the magic signature for
// the declared subtype. The payload must extend beyond the bare signature:
// magic bytes with no image data behind them are not a renderable image.
func matchesSignature(subtype string, decoded []byte) bool {
	switch subtype {
	case "png":
		return len(decoded) > len(pngSignature) && bytes.HasPrefix(decoded, pngSignature)
	case "jpeg", "jpg":
		return len(decoded) > len(jpegSignature) && bytes.HasPrefix(decoded, jpegSignature)
	}
	return false
}

// CrossReference compares the raster outputs present in the source notebook
// against the images found in the Markdown and records any mismatch as a
// discrepancy. A mismatch signals a lossy conversion; it cannot be localized
// further from the validator's side.
func (v *ValidationResult) CrossReference(nb *Notebook) {
	want := RasterOutputCount(nb)
	if want != len(v.Images) {
		v.Errors = append(v.Errors, fmt.Sprintf(
			"notebook has %d raster outputs but markdown embeds %d images", want, len(v.Images)))
	}
}
