package handler_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/irisprep/handler"
)

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		level  string
	}{
		{"client error", handler.ErrNotFound, http.StatusNotFound, "level=WARN"},
		{"server error", errors.New("boom"), http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/submissions/x", nil)
			handler.NewErrorHandler(log)(handler.NewContext(w, req), tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.False(t, decode(t, w).Success)
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "path=/api/submissions/x")
			assert.Contains(t, buf.String(), tt.err.Error())
		})
	}
}
