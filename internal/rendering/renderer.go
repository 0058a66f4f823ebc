// Package rendering turns page descriptors into final HTML documents.
// Templates are pure presentation; the default set is embedded at compile
// time and the build core only depends on the Renderer interface.
package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jonathan/listing-site-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Renderer produces the document bytes for one page.
type Renderer interface {
	Render(page types.Page) ([]byte, error)
}

// SiteInfo is the static site-wide context every template receives.
type SiteInfo struct {
	Title        string
	BaseURL      string // empty disables canonical URLs
	ContactName  string
	ContactPhone string
	ContactLine  string
}

// HTMLRenderer renders pages with the embedded HTML templates.
type HTMLRenderer struct {
	site SiteInfo
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer(site SiteInfo) (*HTMLRenderer, error) {
	tmpl, err := template.New("site").ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse embedded templates", Cause: err}
	}
	return &HTMLRenderer{site: site, tmpl: tmpl}, nil
}

// templateData is the root object handed to every template.
type templateData struct {
	Site        SiteInfo
	Canonical   string
	Title       string
	Description string
	JSONLD      template.JS
	MarkersJSON template.JS
	Home        *types.HomePayload
	Listing     *types.ListingPayload
	Category    *types.CategoryPayload
}

// Render builds a document for the page. The payload type must match the
// page kind produced by the graph builder.
func (r *HTMLRenderer) Render(page types.Page) ([]byte, error) {
	data := templateData{
		Site:      r.site,
		Canonical: canonicalURL(r.site.BaseURL, page),
	}

	var name string
	switch payload := page.Payload.(type) {
	case *types.HomePayload:
		name = "home.tmpl"
		data.Home = payload
		data.Title = payload.Title
		data.Description = payload.Subtitle
		markers, err := markersJSON(payload.Markers)
		if err != nil {
			return nil, &RenderError{Message: "failed to encode map markers", Cause: err}
		}
		data.MarkersJSON = markers
	case *types.ListingPayload:
		name = "listing.tmpl"
		data.Listing = payload
		data.Title = SEOTitle(payload.Listing)
		data.Description = SEODescription(payload.Listing)
		jsonld, err := ListingJSONLD(payload.Listing, pageURL(r.site.BaseURL, page), data.Description, r.site)
		if err != nil {
			return nil, &RenderError{Message: "failed to build JSON-LD", Cause: err}
		}
		data.JSONLD = jsonld
	case *types.CategoryPayload:
		name = "category.tmpl"
		data.Category = payload
		data.Title = payload.Name + "｜物件整理"
		data.Description = categoryDescription(payload)
	default:
		return nil, &RenderError{Message: fmt.Sprintf("no template for page kind %q", page.Kind)}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to execute %s for %s", name, page.Path), Cause: err}
	}
	return buf.Bytes(), nil
}

func categoryDescription(payload *types.CategoryPayload) string {
	if payload.Intro != "" {
		return payload.Intro
	}
	return payload.Name + " 物件條件整理與比較清單。"
}

// pageURL returns the absolute URL of a page, or "" without a base URL.
func pageURL(baseURL string, page types.Page) string {
	if baseURL == "" {
		return ""
	}
	return baseURL + "/" + page.URLPath()
}

func canonicalURL(baseURL string, page types.Page) string {
	return pageURL(baseURL, page)
}
