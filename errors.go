package nb2md

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyNotebook     = errors.New("notebook content cannot be empty")
	ErrMalformedNotebook = errors.New("malformed notebook document")
	ErrImageDecode       = errors.New("image payload is not valid base64")
	ErrPreviewRender     = errors.New("HTML preview rendering failed")

	// Render input validation errors.
	ErrNilNotebook = errors.New("notebook cannot be nil")
	ErrInvalidMode = errors.New("invalid render mode")
	ErrDocName     = errors.New("invalid document name for externalize mode")
)
