package submission

import (
	"errors"
	"fmt"
	"time"
)

// Event triggers a lifecycle transition.
type Event string

const (
	EventValidate Event = "validate"
	EventSubmit   Event = "submit"
	EventAccept   Event = "accept"
	EventFail     Event = "fail"
	EventRetry    Event = "retry"
)

// TransitionError reports an event that is not allowed in the current status.
type TransitionError struct {
	From  Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from status %q for event %q", e.From, e.Event)
}

func IsTransitionError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e)
}

type transition struct {
	to     Status
	action func(s *Submission, at time.Time)
}

// transitions is the lifecycle table: draft → validating → submitting →
// submitted, with failed reachable from both working states and left only
// through a retry.
var transitions = map[Status]map[Event]transition{
	StatusDraft: {
		EventValidate: {to: StatusValidating},
	},
	StatusValidating: {
		EventSubmit: {to: StatusSubmitting},
		EventFail:   {to: StatusFailed},
	},
	StatusSubmitting: {
		EventAccept: {to: StatusSubmitted, action: func(s *Submission, at time.Time) {
			s.SubmittedAt = at
			s.ErrorCode, s.ErrorMessage = "", ""
		}},
		EventFail: {to: StatusFailed},
	},
	StatusFailed: {
		EventRetry: {to: StatusDraft, action: func(s *Submission, _ time.Time) {
			s.RetryCount++
			s.ErrorCode, s.ErrorMessage = "", ""
			s.IrisResponse = nil
		}},
	},
}

// CanFire reports whether ev is allowed from status.
func CanFire(status Status, ev Event) bool {
	_, ok := transitions[status][ev]
	return ok
}

// fire moves s to the next status for ev, running the transition action
// and stamping UpdatedAt.
func fire(s *Submission, ev Event, at time.Time) error {
	t, ok := transitions[s.Status][ev]
	if !ok {
		return &TransitionError{From: s.Status, Event: ev}
	}
	if t.action != nil {
		t.action(s, at)
	}
	s.Status = t.to
	s.UpdatedAt = at
	return nil
}
