package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent represents a templ component interface.
// This matches github.com/a-h/templ.Component without importing it.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption is an alias for datastar's PatchElementOption.
// Options only affect Datastar requests; htmx decides placement client side.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the target selector for where the component should be rendered
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component should be merged into the DOM
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// templResponse wraps a templ component to implement Response
type templResponse struct {
	component TemplComponent
	options   []datastar.PatchElementOption
}

// Render outputs the component as a patch-elements event for Datastar or as
// an HTML fragment otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return renderTempl(w, r, t.component, t.options)
}

// Templ creates a response from a templ component.
// htmx and plain requests receive the rendered HTML; Datastar requests
// receive it as a patch-elements event with the given options.
//
// Example:
//
//	return handler.Templ(views.Entry(entry))
//
// Appending to a list for Datastar clients:
//
//	return handler.Templ(
//		views.Entry(entry),
//		handler.WithTarget("#entries"),
//		handler.WithPatchMode(handler.PatchAppend),
//	)
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{
		component: component,
		options:   opts,
	}
}

// templPartialResponse renders a fragment for in-page requests and a full
// document for everything else
type templPartialResponse struct {
	partial TemplComponent
	full    TemplComponent
	options []datastar.PatchElementOption
}

func (t templPartialResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsHTMX(r) || IsDataStar(r) {
		return renderTempl(w, r, t.partial, t.options)
	}
	return renderTempl(w, r, t.full, nil)
}

// TemplPartial creates a response that renders partial for htmx and Datastar
// requests and full for direct navigation, so a fragment URL opened in the
// browser still shows a complete page.
//
// Example:
//
//	return handler.TemplPartial(views.EntryList(entries), views.Page(entries))
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templPartialResponse{
		partial: partial,
		full:    full,
		options: opts,
	}
}

func renderTempl(w http.ResponseWriter, r *http.Request, c TemplComponent, opts []datastar.PatchElementOption) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		return sse.PatchElementTempl(c, opts...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(r.Context(), w)
}
