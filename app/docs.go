package app

import (
	"apiversions/logger"
	"apiversions/models"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/swaggo/swag"
)

// docTemplate follows the layout of swag-generated docs.go files. The paths
// object is spliced in before registration; the info fields are rendered by
// swag on every ReadDoc.
const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{%escape .Title%}",
        "description": "{%escape .Description%}",
        "version": "{%escape .Version%}"
    },
    "basePath": "{%.BasePath%}",
    "paths": {paths}
}`

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - Docs</title>
<link type="text/css" rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui" data-url="{{.SchemaURL}}"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: document.getElementById("swagger-ui").dataset.url, dom_id: "#swagger-ui"})
</script>
</body>
</html>
`))

type operation struct {
	Summary   string                       `json:"summary,omitempty"`
	Tags      []string                     `json:"tags,omitempty"`
	Responses map[string]map[string]string `json:"responses"`
}

// SchemaInstance is the swag registry name of the App's schema document. It is
// empty until the handler has been built.
func (a *App) SchemaInstance() string {
	return a.docInstance
}

// docRoutes returns the schema and docs page routes and registers the
// schema with swag. The routes are registered ahead of user routes.
func (a *App) docRoutes() []*Route {
	if a.OpenAPIURL == "" {
		return nil
	}
	a.docInstance = a.Title + "-" + uuid.NewString()
	spec := &swag.Spec{
		Version:          a.Version,
		BasePath:         a.basePath(),
		Title:            a.Title,
		Description:      a.Description,
		InfoInstanceName: a.docInstance,
		SwaggerTemplate:  strings.Replace(docTemplate, "{paths}", a.pathsJSON(), 1),
		LeftDelim:        "{%",
		RightDelim:       "%}",
	}
	swag.Register(spec.InstanceName(), spec)

	routes := []*Route{{Method: http.MethodGet, Path: a.OpenAPIURL, Handler: http.HandlerFunc(a.serveSchema)}}
	if a.DocsURL != "" {
		routes = append(routes, &Route{Method: http.MethodGet, Path: a.DocsURL, Handler: http.HandlerFunc(a.serveDocs)})
	}
	return routes
}

func (a *App) basePath() string {
	if a.rootPath == "" {
		return "/"
	}
	return a.rootPath
}

func (a *App) pathsJSON() string {
	paths := make(map[string]map[string]operation)
	for _, r := range a.Routes() {
		if paths[r.Path] == nil {
			paths[r.Path] = make(map[string]operation)
		}
		method := strings.ToLower(r.Method)
		if _, exists := paths[r.Path][method]; exists {
			continue
		}
		paths[r.Path][method] = operation{
			Summary:   r.Name,
			Tags:      r.Tags,
			Responses: map[string]map[string]string{"200": {"description": "OK"}},
		}
	}
	b, err := json.Marshal(paths)
	if err != nil {
		logger.Error("app %q: encoding schema paths: %v", a.Title, err)
		return "{}"
	}
	return templateSafe.Replace(string(b))
}

// templateSafe keeps route names and paths from being read as template
// delimiters. The delimiters can only occur inside JSON strings, where the
// \u0025 escape decodes back to '%'.
var templateSafe = strings.NewReplacer("{%", `{\u0025`, "%}", `\u0025}`)

func (a *App) serveSchema(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(a.docInstance)
	if err != nil {
		logger.Error("app %q: reading schema %s: %v", a.Title, a.docInstance, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse{Message: "schema unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, doc)
}

func (a *App) serveDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := docsPage.Execute(w, struct {
		Title     string
		SchemaURL string
	}{a.Title, a.rootPath + a.OpenAPIURL})
	if err != nil {
		logger.Error("app %q: rendering docs page: %v", a.Title, err)
	}
}
