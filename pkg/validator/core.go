package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Severity ranks an issue. Only SeverityError makes a value invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single rule violation or observation about a field.
type Issue struct {
	Field      string   `json:"field"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Code       string   `json:"code"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func NewError(field, code, message string) Issue {
	return Issue{Field: field, Severity: SeverityError, Code: code, Message: message}
}

func NewWarning(field, code, message string) Issue {
	return Issue{Field: field, Severity: SeverityWarning, Code: code, Message: message}
}

// WithSuggestion returns a copy of the issue carrying a corrective hint.
func (i Issue) WithSuggestion(s string) Issue {
	i.Suggestion = s
	return i
}

// Issues is an ordered collection of issues. It implements error so that
// a failed validation can be returned and later recovered with AsIssues.
type Issues []Issue

func (is Issues) Error() string {
	if len(is) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(is))
	for _, i := range is {
		parts = append(parts, fmt.Sprintf("%s: %s", i.Field, i.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any issue has error severity.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of issues with severity s.
func (is Issues) Count(s Severity) int {
	n := 0
	for _, i := range is {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// BySeverity returns the issues with severity s, preserving order.
func (is Issues) BySeverity(s Severity) Issues {
	out := Issues{}
	for _, i := range is {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Fields returns the distinct fields carrying at least one issue of
// severity s, in first-seen order.
func (is Issues) Fields(s Severity) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, i := range is {
		if i.Severity != s || seen[i.Field] {
			continue
		}
		seen[i.Field] = true
		fields = append(fields, i.Field)
	}
	return fields
}

// Err returns the issues as an error when at least one of them blocks
// validity, and nil otherwise.
func (is Issues) Err() error {
	if !is.HasErrors() {
		return nil
	}
	return is
}

// Rule pairs a check with the issue reported when the check fails.
type Rule struct {
	Check func() bool
	Issue Issue
}

// Apply evaluates every rule in order and collects the issues of the
// failing ones. It never short-circuits. The result is never nil.
func Apply(rules ...Rule) Issues {
	issues := Issues{}
	for _, rule := range rules {
		if !rule.Check() {
			issues = append(issues, rule.Issue)
		}
	}
	return issues
}

// AsIssues extracts Issues from an error chain.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}

	var issues Issues
	if errors.As(err, &issues) {
		return issues, true
	}
	return nil, false
}
