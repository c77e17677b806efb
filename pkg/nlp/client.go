package nlp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Client talks to the remote classification service and memoises every
// successful answer by exact input text. Parse and classify answers live in
// separate caches. The client never retries.
type Client struct {
	log         *logrus.Logger
	transport   Transport
	parseCache  Cache[*ClassificationResult]
	intentCache Cache[*Intent]
	inflight    *singleflight.Group

	parseHits      atomic.Int64
	parseMisses    atomic.Int64
	classifyHits   atomic.Int64
	classifyMisses atomic.Int64
	remoteCalls    atomic.Int64
}

type Option func(*Client)

func WithParseCache(cache Cache[*ClassificationResult]) Option {
	return func(c *Client) {
		c.parseCache = cache
	}
}

func WithIntentCache(cache Cache[*Intent]) Option {
	return func(c *Client) {
		c.intentCache = cache
	}
}

// WithSingleFlight makes concurrent misses for the same text share one remote
// call. The shared answer is cached before any waiter returns.
func WithSingleFlight() Option {
	return func(c *Client) {
		c.inflight = &singleflight.Group{}
	}
}

func NewClient(log *logrus.Logger, transport Transport, opts ...Option) *Client {
	c := &Client{
		log:       log,
		transport: transport,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.parseCache == nil {
		c.parseCache = NewMemoryCache[*ClassificationResult](0, 0)
	}
	if c.intentCache == nil {
		c.intentCache = NewMemoryCache[*Intent](0, 0)
	}

	return c
}

func (c *Client) ParseText(ctx context.Context, text string) (*ClassificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	if result, ok := c.parseCache.Get(ctx, text); ok {
		c.parseHits.Add(1)
		c.log.WithField("op", OpParse).Debug("Classification cache hit")
		return result, nil
	}
	c.parseMisses.Add(1)

	if c.inflight == nil {
		return c.fetchParse(ctx, text)
	}

	v, err, _ := c.inflight.Do(OpParse+":"+text, func() (interface{}, error) {
		return c.fetchParse(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ClassificationResult), nil
}

func (c *Client) ClassifyText(ctx context.Context, text string) (*Intent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	if intent, ok := c.intentCache.Get(ctx, text); ok {
		c.classifyHits.Add(1)
		c.log.WithField("op", OpClassify).Debug("Classification cache hit")
		return intent, nil
	}
	c.classifyMisses.Add(1)

	if c.inflight == nil {
		return c.fetchIntent(ctx, text)
	}

	v, err, _ := c.inflight.Do(OpClassify+":"+text, func() (interface{}, error) {
		return c.fetchIntent(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Intent), nil
}

func (c *Client) Stats() Stats {
	return Stats{
		ParseHits:      c.parseHits.Load(),
		ParseMisses:    c.parseMisses.Load(),
		ClassifyHits:   c.classifyHits.Load(),
		ClassifyMisses: c.classifyMisses.Load(),
		RemoteCalls:    c.remoteCalls.Load(),
	}
}

func (c *Client) Close() error {
	return c.transport.Close()
}

func (c *Client) fetchParse(ctx context.Context, text string) (*ClassificationResult, error) {
	c.remoteCalls.Add(1)

	result, err := c.transport.Parse(ctx, text)
	if err == nil && result == nil {
		err = &ServiceError{StatusCode: http.StatusBadGateway, Body: "empty parse result"}
	}
	if err != nil {
		c.logFailure(OpParse, err)
		return nil, err
	}

	normalizeResult(result)
	c.parseCache.Set(ctx, text, result)

	return result, nil
}

func (c *Client) fetchIntent(ctx context.Context, text string) (*Intent, error) {
	c.remoteCalls.Add(1)

	intent, err := c.transport.Classify(ctx, text)
	if err == nil && intent == nil {
		err = &ServiceError{StatusCode: http.StatusBadGateway, Body: "empty classify result"}
	}
	if err != nil {
		c.logFailure(OpClassify, err)
		return nil, err
	}

	normalizeIntent(intent)
	c.intentCache.Set(ctx, text, intent)

	return intent, nil
}

func (c *Client) logFailure(op string, err error) {
	fields := logrus.Fields{
		"op":    op,
		"kind":  KindOf(err),
		"error": err.Error(),
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		fields["status"] = svcErr.StatusCode
	}

	c.log.WithFields(fields).Warn("Classification service call failed")
}

// Missing sequences encode as empty lists rather than null.
func normalizeResult(result *ClassificationResult) {
	if result.Tokens == nil {
		result.Tokens = []string{}
	}
	if result.Entities == nil {
		result.Entities = []Entity{}
	}
	if result.NounChunks == nil {
		result.NounChunks = []string{}
	}
	if result.Sentences == nil {
		result.Sentences = []string{}
	}
	if result.Deps == nil {
		result.Deps = []Dependency{}
	}
	normalizeIntent(&result.Intent)
}

// An answer without an intent name still gets the unknown sentinel.
func normalizeIntent(intent *Intent) {
	if strings.TrimSpace(intent.Name) == "" {
		intent.Name = UnknownIntent
	}
	if intent.Confidence < 0 {
		intent.Confidence = 0
	}
	if intent.Confidence > 1 {
		intent.Confidence = 1
	}
}
