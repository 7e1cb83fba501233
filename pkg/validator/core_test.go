package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/irisprep/pkg/validator"
)

func TestIssues_Error(t *testing.T) {
	t.Run("returns default message when no issues", func(t *testing.T) {
		var is validator.Issues
		assert.Equal(t, "validation failed", is.Error())
	})

	t.Run("returns formatted message with multiple issues", func(t *testing.T) {
		is := validator.Issues{
			validator.NewError("email", "REQUIRED_FIELD", "is required"),
			validator.NewWarning("port", "SAME_PORTS", "same ports"),
		}

		msg := is.Error()
		assert.Contains(t, msg, "validation failed:")
		assert.Contains(t, msg, "email: is required")
		assert.Contains(t, msg, "port: same ports")
	})
}

func TestIssues_Queries(t *testing.T) {
	t.Parallel()

	is := validator.Issues{
		validator.NewError("a", "X", "a1"),
		validator.NewError("a", "Y", "a2"),
		validator.NewWarning("b", "Z", "b1"),
		validator.NewError("c", "X", "c1"),
		{Field: "d", Severity: validator.SeverityInfo, Code: "I", Message: "d1"},
	}

	assert.True(t, is.HasErrors())
	assert.Equal(t, 3, is.Count(validator.SeverityError))
	assert.Equal(t, 1, is.Count(validator.SeverityWarning))
	assert.Equal(t, 1, is.Count(validator.SeverityInfo))
	assert.Equal(t, []string{"a", "c"}, is.Fields(validator.SeverityError))
	assert.Len(t, is.BySeverity(validator.SeverityWarning), 1)
	assert.Equal(t, []string{"d"}, is.Fields(validator.SeverityInfo))
}

func TestIssues_Err(t *testing.T) {
	t.Parallel()

	t.Run("warnings only is not an error", func(t *testing.T) {
		t.Parallel()
		is := validator.Issues{validator.NewWarning("b", "Z", "b1")}
		assert.NoError(t, is.Err())
	})

	t.Run("error survives wrapping", func(t *testing.T) {
		t.Parallel()
		is := validator.Issues{validator.NewError("a", "X", "a1")}
		wrapped := fmt.Errorf("submit: %w", is.Err())

		got, ok := validator.AsIssues(wrapped)
		require.True(t, ok)
		assert.Equal(t, is, got)
	})

	t.Run("plain error is not a validation error", func(t *testing.T) {
		t.Parallel()
		_, ok := validator.AsIssues(errors.New("boom"))
		assert.False(t, ok)
		_, ok = validator.AsIssues(nil)
		assert.False(t, ok)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("empty result is not nil", func(t *testing.T) {
		t.Parallel()
		is := validator.Apply()
		assert.NotNil(t, is)
		assert.Empty(t, is)
	})

	t.Run("keeps rule order and never short-circuits", func(t *testing.T) {
		t.Parallel()
		is := validator.Apply(
			validator.Present("", validator.NewError("first", "REQUIRED", "first")),
			validator.Present("ok", validator.NewError("skipped", "REQUIRED", "skipped")),
			validator.AtLeast(-1, 0, validator.NewError("second", "RANGE", "second")),
		)
		require.Len(t, is, 2)
		assert.Equal(t, "first", is[0].Field)
		assert.Equal(t, "second", is[1].Field)
	})
}

func TestIssue_WithSuggestion(t *testing.T) {
	t.Parallel()

	base := validator.NewError("port", "INVALID_FORMAT", "bad")
	hinted := base.WithSuggestion("Example: USNYC")

	assert.Empty(t, base.Suggestion)
	assert.Equal(t, "Example: USNYC", hinted.Suggestion)
	assert.Equal(t, validator.SeverityError, hinted.Severity)
}
