package nlp

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
)

func newNLPServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPTransport_Parse(t *testing.T) {
	ctx := context.Background()

	t.Run("should post the text and decode the result", func(t *testing.T) {
		req := require.New(t)

		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/parse", r.URL.Path)

			var body Request
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "show me a blue hoodie", body.Text)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true,"result":{"tokens":["show","me","a","blue","hoodie"],` +
				`"entities":[{"text":"blue hoodie","label":"PRODUCT"}],"noun_chunks":["a blue hoodie"],` +
				`"sentences":["show me a blue hoodie"],"deps":[{"text":"hoodie","dep":"dobj","head":"show"}],` +
				`"intent":{"name":"search_product","confidence":0.91,"action":"search"}}}`))
		})

		transport := NewHTTPTransport(server.URL+"/", time.Second)
		result, err := transport.Parse(ctx, "show me a blue hoodie")
		req.NoError(err)
		req.Equal("blue hoodie", result.Entities[0].Text)
		req.Equal([]string{"a blue hoodie"}, result.NounChunks)
		req.Equal("dobj", result.Deps[0].Dep)
		req.Equal("search", result.Intent.Action)
		req.InDelta(0.91, result.Intent.Confidence, 1e-9)
	})

	t.Run("should turn a 4xx status into a service error", func(t *testing.T) {
		req := require.New(t)

		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "text too long", http.StatusBadRequest)
		})

		_, err := NewHTTPTransport(server.URL, time.Second).Parse(ctx, "hi")

		var svcErr *ServiceError
		req.True(errors.As(err, &svcErr))
		req.Equal(http.StatusBadRequest, svcErr.StatusCode)
		req.Contains(err.Error(), "got 400")
		req.Contains(svcErr.Body, "text too long")
	})

	t.Run("should keep a 5xx status", func(t *testing.T) {
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := NewHTTPTransport(server.URL, time.Second).Parse(ctx, "hi")

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
	})

	t.Run("should honour a not-ok envelope", func(t *testing.T) {
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":false,"status":422,"error":"unsupported language"}`))
		})

		_, err := NewHTTPTransport(server.URL, time.Second).Parse(ctx, "hola")

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, 422, svcErr.StatusCode)
		assert.Equal(t, "unsupported language", svcErr.Body)
	})

	t.Run("should treat a malformed body as a bad gateway", func(t *testing.T) {
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		_, err := NewHTTPTransport(server.URL, time.Second).Parse(ctx, "hi")

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
	})

	t.Run("should report a timeout as unavailable", func(t *testing.T) {
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`{"ok":true,"result":{"intent":{"name":"x","confidence":1}}}`))
		})

		_, err := NewHTTPTransport(server.URL, 50*time.Millisecond).Parse(ctx, "hi")

		var unavailable *ServiceUnavailableError
		assert.True(t, errors.As(err, &unavailable))
		assert.Equal(t, KindServiceUnavailable, KindOf(err))
	})

	t.Run("should report an unreachable service as unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewHTTPTransport(url, time.Second).Parse(ctx, "hi")

		var unavailable *ServiceUnavailableError
		assert.True(t, errors.As(err, &unavailable))
	})

	t.Run("should not call out with a cancelled context", func(t *testing.T) {
		called := false
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewHTTPTransport(server.URL, time.Second).Parse(cancelled, "hi")

		var unavailable *ServiceUnavailableError
		assert.True(t, errors.As(err, &unavailable))
		assert.False(t, called)
	})
}

func TestHTTPTransport_effectiveTimeout(t *testing.T) {
	transport := NewHTTPTransport("http://nlp.local", 10*time.Second)

	t.Run("should use the configured timeout without a deadline", func(t *testing.T) {
		timeout, err := transport.effectiveTimeout(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, timeout)
	})

	t.Run("should shrink to a nearer deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		timeout, err := transport.effectiveTimeout(ctx)
		require.NoError(t, err)
		assert.LessOrEqual(t, timeout, time.Second)
		assert.Greater(t, timeout, time.Duration(0))
	})

	t.Run("should refuse a deadline that already passed", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Millisecond))
		defer cancel()

		_, err := transport.effectiveTimeout(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestHTTPTransport_Classify(t *testing.T) {
	t.Run("should decode the intent", func(t *testing.T) {
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/classify", r.URL.Path)
			_, _ = w.Write([]byte(`{"ok":true,"intent":{"name":"greet","confidence":0.77}}`))
		})

		intent, err := NewHTTPTransport(server.URL, time.Second).Classify(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "greet", intent.Name)
		assert.InDelta(t, 0.77, intent.Confidence, 1e-9)
	})

	t.Run("should reject an ok envelope without an intent", func(t *testing.T) {
		server := newNLPServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		_, err := NewHTTPTransport(server.URL, time.Second).Classify(context.Background(), "hello")

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
	})
}
