// Package swagger serves the OpenAPI document and a ReDoc page that renders it.
package swagger

import (
	"context"
	_ "embed"
	"net/http"
)

// Routes registered by Register.
const (
	DocsPath = "/api-docs"
	SpecPath = "/openapi.yaml"
)

// redocBundle is the ReDoc standalone bundle loaded by the docs page.
const redocBundle = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

//go:embed openapi.yaml
var openAPI []byte

var docsPage = []byte(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Nexera API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + redocBundle + `"></script>
    <script>Redoc.init('` + SpecPath + `', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`)

// Register attaches the docs page and the OpenAPI document to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(DocsPath, serveStatic("text/html; charset=utf-8", docsPage))
	mux.HandleFunc(SpecPath, serveStatic("application/yaml; charset=utf-8", openAPI))
}

// serveStatic answers GET with body and 404 for any other method.
func serveStatic(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}
}
