// Package submission drives a Shipping Instruction through final
// validation and delivery to IRIS, tracking each attempt as a Submission.
package submission

import (
	"time"

	"github.com/dmitrymomot/irisprep/pkg/iris"
)

// Status is the lifecycle state of a submission.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
	StatusFailed     Status = "failed"
)

// Step is a stage of the submission workflow reported to progress callbacks.
type Step string

const (
	StepPreparing  Step = "preparing"
	StepValidating Step = "validating"
	StepSubmitting Step = "submitting"
	StepConfirming Step = "confirming"
)

// Steps lists the workflow stages in execution order.
func Steps() []Step {
	return []Step{StepPreparing, StepValidating, StepSubmitting, StepConfirming}
}

// Progress is reported when the workflow enters a step.
type Progress struct {
	Step       Step   `json:"currentStep"`
	StepIndex  int    `json:"stepIndex"`
	TotalSteps int    `json:"totalSteps"`
	Message    string `json:"message"`
}

// Error codes stored on failed submissions.
const (
	CodeValidationErrors = "VALIDATION_ERRORS"
	CodeSubmissionFailed = "SUBMISSION_FAILED"
)

type ValidationStatus string

const (
	ValidationValid   ValidationStatus = "valid"
	ValidationWarning ValidationStatus = "warning"
)

// Confirmation summarizes what was sent once IRIS has accepted it.
type Confirmation struct {
	RecordID         string           `json:"recordId"`
	TotalFields      int              `json:"totalFields"`
	ValidationStatus ValidationStatus `json:"validationStatus"`
}

// Submission is one attempt, possibly retried, to deliver a record to IRIS.
type Submission struct {
	ID              string    `json:"id"`
	RecordID        string    `json:"recordId"`
	SubmittedBy     string    `json:"submittedBy"`
	Status          Status    `json:"status"`
	ReferenceNumber string    `json:"referenceNumber,omitempty"`
	SubmittedAt     time.Time `json:"submittedAt,omitzero"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	ErrorCode       string    `json:"errorCode,omitempty"`
	ErrorMessage    string    `json:"errorMessage,omitempty"`
	RetryCount      int       `json:"retryCount"`

	Validation   *iris.ValidationResult   `json:"validation,omitempty"`
	IrisResponse *iris.SubmissionResponse `json:"irisResponse,omitempty"`
	Confirmation *Confirmation            `json:"confirmation,omitempty"`
}
