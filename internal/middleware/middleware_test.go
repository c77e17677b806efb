package middleware

import (
	"ShopAssist/internal/entity"
	jwtPkg "ShopAssist/pkg/jwt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestMiddleware(opts ...Option) Middleware {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, opts...)
}

func newProtectedApp(m Middleware) *fiber.App {
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/me", m.NewTokenMiddleware, func(c *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(c)
		if err != nil {
			return err
		}
		return c.JSON(user)
	})
	return app
}

func TestTokenMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecretEnv, testSecret)
	app := newProtectedApp(newTestMiddleware())

	t.Run("should accept a valid token", func(t *testing.T) {
		token, _, err := jwtPkg.Sign(entity.UserLoginData{
			ID:       "user-1",
			Email:    "shopper@example.com",
			Username: "shopper",
		}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"user-1"`)
	})

	t.Run("should reject a missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token, _, err := jwtPkg.Sign(entity.UserLoginData{ID: "user-1"}, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should reject a token without a user id", func(t *testing.T) {
		token, _, err := jwtPkg.Sign(entity.UserLoginData{Email: "x@example.com"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRateLimiter(t *testing.T) {
	m := newTestMiddleware(WithRateLimit(1, 2))
	app := fiber.New()
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, statuses)
}

func TestRateLimiter_PerShopper(t *testing.T) {
	m := newTestMiddleware(WithRateLimit(1, 1))
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user", entity.UserLoginData{ID: id})
		}
		return c.Next()
	}, m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Test-User", user)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	assert.Equal(t, http.StatusNoContent, send("bob"))
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("user:alice"))
	require.True(t, limiter.allow("user:bob"))
	require.Equal(t, 2, limiter.size())

	now = now.Add(limiterIdleTTL + time.Minute)
	require.True(t, limiter.allow("user:carol"))

	assert.Equal(t, 1, limiter.size())
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddleware()
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	t.Run("should keep an incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDKey, "abc-123")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "abc-123", string(body))
		assert.Equal(t, "abc-123", resp.Header.Get(RequestIDKey))
	})

	t.Run("should replace a malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDKey, "bad id\twith spaces")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Len(t, string(body), 26)
	})

	t.Run("should mint a ulid otherwise", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Len(t, string(body), 26)
		assert.Equal(t, string(body), resp.Header.Get(RequestIDKey))
	})
}

func TestSanitizeRequestBody(t *testing.T) {
	t.Run("should hide secrets", func(t *testing.T) {
		got := sanitizeRequestBody([]byte(`{"token":"abc","text":"hi"}`))
		assert.Contains(t, got, `"token":"[SECRET]"`)
		assert.Contains(t, got, `"text":"hi"`)
	})

	t.Run("should truncate long chat text", func(t *testing.T) {
		got := sanitizeRequestBody([]byte(`{"text":"` + strings.Repeat("a", 200) + `"}`))
		assert.Contains(t, got, strings.Repeat("a", maxLoggedText)+"...")
		assert.NotContains(t, got, strings.Repeat("a", maxLoggedText+1))
	})

	t.Run("should not echo non-json bodies", func(t *testing.T) {
		assert.Equal(t, "[non-JSON body]", sanitizeRequestBody([]byte("text=hello")))
	})
}

