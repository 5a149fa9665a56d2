package binder

import (
	"fmt"
	"net/http"
)

// Path creates a path parameter binder using the provided extractor, which
// is called with the parameter name of every tagged field.
//
// It supports struct tags for custom parameter names:
//   - `path:"name"` - binds to path parameter "name"
//   - `path:"-"` - skips the field
//
// Example with chi:
//
//	type deleteEntryRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Delete("/entries/{id}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, deleteEntryRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		fields, err := taggedFields(v, "path", ErrInvalidPath)
		if err != nil {
			return err
		}

		values := make(map[string][]string, len(fields))
		for _, name := range fields {
			if value := extractor(r, name); value != "" {
				values[name] = []string{value}
			}
		}

		return bindToStruct(v, "path", values, ErrInvalidPath)
	}
}
