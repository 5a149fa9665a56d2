package web

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/aserowy/htmx-playground/handler"
	"github.com/aserowy/htmx-playground/modules/entries"
	"github.com/aserowy/htmx-playground/pkg/notifications"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// Title is shown in the browser tab and the page heading.
const Title = "htmx playground"

// PageParams contains data for rendering the full page.
type PageParams struct {
	Title   string
	Entries []entries.Entry
	// Lazy replaces the entry list with a placeholder that loads it after the page.
	Lazy bool
}

func view(name string, data any) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}

// Page renders the full document.
func Page(p PageParams) templ.Component {
	if p.Title == "" {
		p.Title = Title
	}
	return view("page", p)
}

// EntryList renders the entry list fragment.
func EntryList(p entries.ListParams) templ.Component {
	return view("entry_list", p.Entries)
}

// Entry renders a single entry.
func Entry(p entries.EntryParams) templ.Component {
	return view("entry", p.Entry)
}

// EntryPage renders the full document with the list already in place.
func EntryPage(p entries.ListParams) templ.Component {
	return Page(PageParams{Entries: p.Entries})
}

// EntryViews returns the views used by the entries module.
func EntryViews() entries.Views {
	return entries.Views{
		List:  EntryList,
		Entry: Entry,
		Page:  EntryPage,
	}
}

// Notification renders the toast streamed for n.
func Notification(n notifications.Notification) templ.Component {
	return view("notification", n)
}

// ErrorPage renders a full error document.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return view("error_page", p)
}

// ErrorToast renders an error toast for in-page requests.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return view("error_toast", p)
}

// ErrorViews returns the error handler configuration rendering with these views.
func ErrorViews() handler.ErrorHandlerConfig {
	return handler.ErrorHandlerConfig{
		ErrorPage:  ErrorPage,
		ErrorToast: ErrorToast,
	}
}
