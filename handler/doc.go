// Package handler provides type-safe HTTP request handling for JSON APIs.
//
// A HandlerFunc receives a Context and a typed request value that has
// already been populated by the configured binders, and returns a Response
// that renders itself:
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	func getSubmission(ctx handler.Context, req getRequest) handler.Response {
//		sub, err := svc.Get(ctx, req.ID)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(sub)
//	}
//
//	r.Get("/api/submissions/{id}", handler.Wrap(getSubmission,
//		handler.WithBinders[handler.Context, getRequest](binder.Path(chi.URLParam)),
//	))
//
// # Responses
//
// JSON responses share one envelope, JSONResponse:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "Missing SI data", "code": "INVALID_DATA"}
//
// JSON wraps any value as data; JSONError turns an error into the failure
// envelope. Only HTTPError values expose their message and code to the
// client. Any other error is reported as a generic internal error.
//
// # Error Handling
//
// Binding and rendering failures go to the ErrorHandler. NewErrorHandler
// logs the error with the request ID and answers with the JSON failure
// envelope. Binder errors map to 400 unless they are joined with an
// HTTPError, which then decides the status.
package handler
