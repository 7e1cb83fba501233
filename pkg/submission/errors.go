package submission

import "errors"

var (
	ErrRecordInvalid    = errors.New("record has validation errors")
	ErrSubmissionFailed = errors.New("submission to iris failed")
	ErrNotFound         = errors.New("submission not found")
	ErrNotRetryable     = errors.New("only failed submissions can be retried")
)
