// Package binder turns request data into typed request structs.
//
// Each binder reads one source selected by struct tags: Form reads
// `form:"..."` fields from url-encoded bodies, Query reads `query:"..."`
// fields and Path reads `path:"..."` fields through a router specific
// extractor such as chi.URLParam. Binders are applied in order by
// handler.Wrap; one returning ErrBinderNotApplicable is skipped.
//
// Malformed input is reported with the sentinel errors in this package and
// IsBindingError lets error handlers map them to a 4xx status.
package binder
