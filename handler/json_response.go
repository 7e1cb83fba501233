package handler

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope of every JSON response.
type JSONResponse struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithResult attaches a result object next to the data.
func WithResult(result any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Result = result
	}
}

// JSON creates a JSON response. A JSONResponse is sent as is, an error is
// rendered like JSONError and any other value becomes the data of a
// successful envelope.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK}

	switch val := v.(type) {
	case JSONResponse:
		r.body = val
	case error:
		return JSONError(val, opts...)
	default:
		r.body = JSONResponse{Success: true, Data: v}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError creates a failure envelope from err. HTTPError values set the
// status, code and message; other errors become a generic 500.
func JSONError(err error, opts ...JSONOption) Response {
	httpErr := classifyError(err)
	r := &jsonResponse{
		status: httpErr.Code,
		body: JSONResponse{
			Success: false,
			Error:   httpErr.message(),
			Code:    httpErr.Key,
		},
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}
