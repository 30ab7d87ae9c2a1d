package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-eval/api/internal/enrich"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["inputs"])

		_, _ = w.Write([]byte(`[{"generated_text":"{\"ok\":true}"},{"generated_text":"ignored"}]`))
	}))
	defer srv.Close()

	got, err := New("hf-key", srv.URL).Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
}

func TestGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	_, err := New("hf-key", srv.URL).Generate(context.Background(), "hello")
	var se *enrich.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Contains(t, se.Body, "loading")
}

func TestGenerateBadBody(t *testing.T) {
	for name, body := range map[string]string{
		"object": `{"generated_text":"x"}`,
		"empty":  `[]`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := New("hf-key", srv.URL).Generate(context.Background(), "hello")
			assert.Error(t, err)
		})
	}
}

func TestGenerateHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := New("hf-key", srv.URL).Generate(ctx, "hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateWithoutKey(t *testing.T) {
	_, err := New("", "").Generate(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, DefaultModelURL, New("", "").URL)
}
