package web

import (
	_ "embed"
	"html/template"
	"io"
)

// ============================================================
// Bundled Assets
// ============================================================

const (
	PlaceholderName        = "floorplan-placeholder.jpg"
	PlaceholderContentType = "image/jpeg"
	PlaceholderURL         = "/assets/" + PlaceholderName
)

//go:embed floorplan-placeholder.jpg
var placeholder []byte

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Placeholder returns the static image every generation resolves to.
func Placeholder() []byte {
	return placeholder
}

// PageData is what the single page needs to bind to its studio session.
type PageData struct {
	SessionID     string
	MinSquareFeet int
	MaxSquareFeet int
}

// RenderIndex writes the form page for one session.
func RenderIndex(w io.Writer, data PageData) error {
	return indexTmpl.Execute(w, data)
}

//go:embed openapi.yaml
var openAPISpec []byte

//go:embed docs.html
var docsHTML []byte

// OpenAPISpec describes the studio API.
func OpenAPISpec() []byte {
	return openAPISpec
}

// DocsPage renders OpenAPISpec in the browser.
func DocsPage() []byte {
	return docsHTML
}
