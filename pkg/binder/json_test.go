package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/irisprep/pkg/binder"
)

type payload struct {
	Name  string   `json:"name"`
	Count *float64 `json:"count"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(jsonRequest(`{"name":"Acme","count":3}`, "application/json; charset=utf-8"), &got)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
		require.NotNil(t, got.Count)
		assert.Equal(t, 3.0, *got.Count)
	})

	t.Run("strings are not rewritten", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON()(jsonRequest(`{"name":"  <b>Acme</b>  "}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "  <b>Acme</b>  ", got.Name)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		opts        []binder.JSONOption
		want        error
	}{
		{"missing content type", `{}`, "", nil, binder.ErrMissingContentType},
		{"wrong content type", `{}`, "text/plain", nil, binder.ErrUnsupportedMediaType},
		{"empty body", ``, "application/json", nil, binder.ErrFailedToParseJSON},
		{"malformed", `{"name":`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"type mismatch", `{"count":"three"}`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"unknown field strict", `{"extra":1}`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"trailing data", `{"name":"a"}{"name":"b"}`, "application/json", nil, binder.ErrFailedToParseJSON},
		{"too large", `{"name":"` + strings.Repeat("x", 64) + `"}`, "application/json", []binder.JSONOption{binder.WithMaxSize(32)}, binder.ErrRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got payload
			err := binder.JSON(tt.opts...)(jsonRequest(tt.body, tt.contentType), &got)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown fields allowed", func(t *testing.T) {
		t.Parallel()
		var got payload
		err := binder.JSON(binder.AllowUnknownFields())(jsonRequest(`{"name":"a","extra":1}`, "application/json"), &got)
		require.NoError(t, err)
		assert.Equal(t, "a", got.Name)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := jsonRequest(`{}`, "application/json").WithContext(ctx)
		var got payload
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})
}
