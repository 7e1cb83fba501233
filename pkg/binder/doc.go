// Package binder decodes HTTP request data into typed request structs.
//
// Binders share the signature func(r *http.Request, v any) error so they
// can be chained by handler.Wrap. Two sources are supported:
//
//   - JSON bodies, strict by default (unknown fields rejected, trailing
//     data rejected, size-limited).
//   - Path parameters read through a router-provided extractor such as
//     chi.URLParam, addressed with `path:"name"` struct tags.
//
// String values are never rewritten. Normalization of user input is left
// to the domain layer so it can report what it changed.
//
// # Usage
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/api/submissions/{id}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, getRequest](binder.Path(chi.URLParam)),
//	))
//
// # Error Handling
//
// Every error wraps one of the package sentinels and can be matched with
// errors.Is:
//
//	if errors.Is(err, binder.ErrFailedToParseJSON) {
//		// malformed body
//	}
package binder
