package iris

import (
	"time"

	"github.com/dmitrymomot/irisprep/pkg/autofix"
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/si"
	"github.com/dmitrymomot/irisprep/pkg/sicheck"
	"github.com/dmitrymomot/irisprep/pkg/validator"
)

// Metadata summarizes a validation pass in field counts.
type Metadata struct {
	// TotalFields is the number of non-empty business fields.
	TotalFields int `json:"totalFields"`
	// ValidFields is TotalFields minus InvalidFields. It can go below zero
	// when required fields are missing, since those are invalid but not counted.
	ValidFields int `json:"validFields"`
	// InvalidFields is the number of distinct fields with at least one error.
	InvalidFields int `json:"invalidFields"`
	// WarningFields is the number of warning issues.
	WarningFields   int `json:"warningFields"`
	AutoFixedFields int `json:"autoFixedFields"`
}

// ValidationResult is the outcome of preparing a record for submission.
// IsValid is true iff no issue has error severity.
type ValidationResult struct {
	IsValid   bool             `json:"isValid"`
	Issues    validator.Issues `json:"issues"`
	AutoFixes []autofix.Fix    `json:"autoFixes"`
	Metadata  Metadata         `json:"metadata"`
}

// Errors returns the error-severity issues.
func (r ValidationResult) Errors() validator.Issues {
	return r.Issues.BySeverity(validator.SeverityError)
}

// Warnings returns the warning-severity issues.
func (r ValidationResult) Warnings() validator.Issues {
	return r.Issues.BySeverity(validator.SeverityWarning)
}

// Prepared is a corrected record together with its validation result.
type Prepared struct {
	Data   si.Record
	Result ValidationResult
}

// Prepare auto-fixes rec, validates the corrected copy and aggregates the
// counts. rec is not modified. now is the reference instant for date checks.
func Prepare(reg *rules.Registry, rec si.Record, now time.Time) Prepared {
	fixed := autofix.Apply(reg, rec)
	issues := sicheck.Validate(reg, fixed.Data, now)

	return Prepared{
		Data: fixed.Data,
		Result: ValidationResult{
			IsValid:   !issues.HasErrors(),
			Issues:    issues,
			AutoFixes: fixed.Fixes,
			Metadata:  metadata(fixed.Data, issues, len(fixed.Fixes)),
		},
	}
}

// Validate is Prepare without the corrected record.
func Validate(reg *rules.Registry, rec si.Record, now time.Time) ValidationResult {
	return Prepare(reg, rec, now).Result
}

func metadata(rec si.Record, issues validator.Issues, fixes int) Metadata {
	total := 0
	for _, f := range si.BusinessFields() {
		if !rec.IsEmpty(f) {
			total++
		}
	}
	invalid := len(issues.Fields(validator.SeverityError))

	return Metadata{
		TotalFields:     total,
		ValidFields:     total - invalid,
		InvalidFields:   invalid,
		WarningFields:   issues.Count(validator.SeverityWarning),
		AutoFixedFields: fixes,
	}
}
