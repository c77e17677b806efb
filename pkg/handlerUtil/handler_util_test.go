package handlerUtil

import (
	"ShopAssist/internal/api/chat"
	"ShopAssist/pkg/nlp"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := New(logger)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", err, c.Path(), "test")
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, jsoniter.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_Handle(t *testing.T) {
	t.Run("should answer a response error with its own status", func(t *testing.T) {
		status, body := handle(t, fmt.Errorf("decode turn: %w", chat.ErrInvalidRequest))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Error, "invalid chat request")
	})

	t.Run("should map invalid input to 400", func(t *testing.T) {
		status, body := handle(t, nlp.ErrInvalidInput)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_TEXT", body.Code)
	})

	t.Run("should map a rejected request to 502 with the upstream status", func(t *testing.T) {
		status, body := handle(t, &nlp.ServiceError{StatusCode: 422})

		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, 422, body.UpstreamStatus)
		assert.Contains(t, body.Error, "got 422")
	})

	t.Run("should map an unavailable service to 503", func(t *testing.T) {
		status, body := handle(t, &nlp.ServiceUnavailableError{Err: context.DeadlineExceeded})

		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "CLASSIFICATION_UNAVAILABLE", body.Code)
	})
}
