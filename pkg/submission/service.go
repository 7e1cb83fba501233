package submission

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/irisprep/pkg/iris"
	"github.com/dmitrymomot/irisprep/pkg/logger"
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/si"
)

type Config struct {
	StoreCapacity int `env:"SUBMISSION_STORE_CAPACITY" envDefault:"1000"`
}

var stepMessages = map[Step]string{
	StepPreparing:  "Preparing data for submission...",
	StepValidating: "Running final validation checks...",
	StepSubmitting: "Submitting to IRIS API...",
	StepConfirming: "Confirming submission...",
}

// ProgressFunc receives workflow progress. It runs synchronously on the
// submitting goroutine.
type ProgressFunc func(Progress)

// Service runs the submission workflow.
type Service struct {
	reg   *rules.Registry
	iris  iris.Submitter
	store Store
	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

type Option func(*Service)

func WithStore(s Store) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(svc *Service) {
		if fn != nil {
			svc.newID = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

// NewService builds a service validating with reg and delivering through
// sub. Submissions are kept in a MemoryStore of 1000 entries unless
// WithStore says otherwise.
func NewService(reg *rules.Registry, sub iris.Submitter, opts ...Option) *Service {
	svc := &Service{
		reg:   reg,
		iris:  sub,
		store: NewMemoryStore(1000),
		now:   time.Now,
		newID: uuid.NewString,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Submit validates rec and, when it has no errors, sends its corrected
// form to IRIS. The submission is stored and returned in every case.
//
// Errors wrap ErrRecordInvalid when validation blocked the submission (the
// issues are on Submission.Validation) or ErrSubmissionFailed when IRIS
// refused or could not be reached.
func (s *Service) Submit(ctx context.Context, rec si.Record, submittedBy string, progress ProgressFunc) (Submission, error) {
	now := s.now()
	sub := Submission{
		ID:          s.newID(),
		RecordID:    rec.ID,
		SubmittedBy: submittedBy,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Save(ctx, sub); err != nil {
		return sub, err
	}
	return s.run(ctx, sub, rec, progress)
}

// Retry runs the workflow again for a failed submission with rec, which
// may have been corrected in the meantime.
func (s *Service) Retry(ctx context.Context, id string, rec si.Record, progress ProgressFunc) (Submission, error) {
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	if !CanFire(sub.Status, EventRetry) {
		return sub, errors.Join(ErrNotRetryable, &TransitionError{From: sub.Status, Event: EventRetry})
	}
	if err := fire(&sub, EventRetry, s.now()); err != nil {
		return sub, err
	}
	sub.RecordID = rec.ID
	return s.run(ctx, sub, rec, progress)
}

func (s *Service) Get(ctx context.Context, id string) (Submission, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) run(ctx context.Context, sub Submission, rec si.Record, progress ProgressFunc) (Submission, error) {
	log := s.log.With(logger.SubmissionID(sub.ID), logger.RecordID(rec.ID))
	report := func(step Step) {
		if progress == nil {
			return
		}
		steps := Steps()
		progress(Progress{
			Step:       step,
			StepIndex:  slices.Index(steps, step),
			TotalSteps: len(steps),
			Message:    stepMessages[step],
		})
	}

	report(StepPreparing)
	if err := fire(&sub, EventValidate, s.now()); err != nil {
		return sub, err
	}

	report(StepValidating)
	prepared := iris.Prepare(s.reg, rec, s.now())
	res := prepared.Result
	sub.Validation = &res
	log.InfoContext(ctx, "record validated", logger.Validation(
		res.IsValid, len(res.Errors()), len(res.Warnings()), res.Metadata.AutoFixedFields,
	))

	if err := res.Errors().Err(); err != nil {
		sub = s.fail(ctx, sub, CodeValidationErrors, "Record has validation errors")
		return sub, errors.Join(ErrRecordInvalid, err)
	}

	if err := fire(&sub, EventSubmit, s.now()); err != nil {
		return sub, err
	}
	if err := s.store.Save(ctx, sub); err != nil {
		log.ErrorContext(ctx, "failed to store submission", logger.Error(err))
	}

	report(StepSubmitting)
	resp, err := s.iris.Submit(ctx, iris.NewSubmissionRequest(prepared.Data, sub.SubmittedBy, s.now()))
	if errors.Is(err, iris.ErrRejected) {
		sub.IrisResponse = &resp
	}
	if err != nil {
		log.WarnContext(ctx, "iris submission failed", logger.Error(err))
		sub = s.fail(ctx, sub, CodeSubmissionFailed, err.Error())
		return sub, errors.Join(ErrSubmissionFailed, err)
	}

	report(StepConfirming)
	sub.IrisResponse = &resp
	sub.ReferenceNumber = resp.ReferenceNumber
	sub.Confirmation = &Confirmation{
		RecordID:         rec.ID,
		TotalFields:      res.Metadata.TotalFields,
		ValidationStatus: ValidationValid,
	}
	if res.Metadata.WarningFields > 0 {
		sub.Confirmation.ValidationStatus = ValidationWarning
	}
	if err := fire(&sub, EventAccept, s.now()); err != nil {
		return sub, err
	}
	if err := s.store.Save(ctx, sub); err != nil {
		return sub, err
	}

	log.InfoContext(ctx, "submission accepted", logger.ReferenceNumber(sub.ReferenceNumber))
	return sub, nil
}

func (s *Service) fail(ctx context.Context, sub Submission, code, msg string) Submission {
	// Failing is allowed from both working states.
	_ = fire(&sub, EventFail, s.now())
	sub.ErrorCode = code
	sub.ErrorMessage = msg
	if err := s.store.Save(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "failed to store submission", logger.SubmissionID(sub.ID), logger.Error(err))
	}
	return sub
}
