package nlp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

type HTTPTransport struct {
	baseURL string
	timeout time.Duration
}

func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

func (t *HTTPTransport) Parse(ctx context.Context, text string) (*ClassificationResult, error) {
	resp, err := t.post(ctx, OpParse, text)
	if err != nil {
		return nil, err
	}

	result, _, err := resp.Unwrap(OpParse)
	return result, err
}

func (t *HTTPTransport) Classify(ctx context.Context, text string) (*Intent, error) {
	resp, err := t.post(ctx, OpClassify, text)
	if err != nil {
		return nil, err
	}

	_, intent, err := resp.Unwrap(OpClassify)
	return intent, err
}

func (t *HTTPTransport) Close() error {
	return nil
}

func (t *HTTPTransport) post(ctx context.Context, op string, text string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ServiceUnavailableError{Err: err}
	}

	payload, err := jsoniter.Marshal(Request{Text: text})
	if err != nil {
		return nil, err
	}

	timeout, err := t.effectiveTimeout(ctx)
	if err != nil {
		return nil, &ServiceUnavailableError{Err: err}
	}

	agent := fiber.Post(t.baseURL + "/" + op)
	agent.ContentType(fiber.MIMEApplicationJSON).Body(payload)

	if timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		return nil, &ServiceUnavailableError{Err: err}
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &ServiceUnavailableError{Err: errs[0]}
	}

	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, &ServiceError{StatusCode: code, Body: string(body)}
	}

	var resp Response
	if err := jsoniter.Unmarshal(body, &resp); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Body: "malformed response: " + err.Error()}
	}

	return &resp, nil
}

// effectiveTimeout is the smaller of the configured timeout and what is left of
// the ctx deadline. A deadline that has already passed is an error.
func (t *HTTPTransport) effectiveTimeout(ctx context.Context) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return t.timeout, nil
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	if t.timeout <= 0 || remaining < t.timeout {
		return remaining, nil
	}
	return t.timeout, nil
}
