package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// RecordID records the SI record identifier under the key "record_id".
// An empty id yields an empty Attr.
func RecordID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("record_id", id)
}

func SubmissionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("submission_id", id)
}

// ReferenceNumber records the IRIS reference under the key "reference_number".
func ReferenceNumber(ref string) slog.Attr {
	if ref == "" {
		return slog.Attr{}
	}
	return slog.String("reference_number", ref)
}

// Validation groups the outcome of a validation pass under "validation".
func Validation(valid bool, errors, warnings, fixes int) slog.Attr {
	return slog.Group("validation",
		slog.Bool("valid", valid),
		slog.Int("errors", errors),
		slog.Int("warnings", warnings),
		slog.Int("auto_fixes", fixes),
	)
}

func IssueCount(n int) slog.Attr {
	return slog.Int("issue_count", n)
}

func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// StatusCode records an HTTP status under "status_code". Zero yields an
// empty Attr, since no response was received.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status_code", code)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}
