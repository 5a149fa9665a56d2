package binder

import (
	"fmt"
	"net/http"
	"strings"
)

const formMediaType = "application/x-www-form-urlencoded"

// Form creates a binder for application/x-www-form-urlencoded bodies, which
// is what htmx sends for hx-post forms.
//
// It supports struct tags for custom field names:
//   - `form:"name"` - binds to form field "name"
//   - `form:"-"` - skips the field
//
// Bodyless GET, HEAD and DELETE requests return ErrBinderNotApplicable so the
// binder can be combined with Path or Query on shared request types.
//
// Example:
//
//	type createEntryRequest struct {
//		Content string `form:"content"`
//	}
//
//	r.Post("/entries", handler.Wrap(h,
//		handler.WithBinders[handler.Context, createEntryRequest](binder.Form()),
//	))
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			if isBodyless(r) {
				return ErrBinderNotApplicable
			}
			return fmt.Errorf("%w: expected %s", ErrMissingContentType, formMediaType)
		}

		// Extract media type without parameters
		mediaType := contentType
		if idx := strings.Index(contentType, ";"); idx != -1 {
			mediaType = strings.TrimSpace(contentType[:idx])
		}

		if !strings.EqualFold(mediaType, formMediaType) {
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mediaType, formMediaType)
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
	}
}

func isBodyless(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return r.ContentLength <= 0
	default:
		return false
	}
}
