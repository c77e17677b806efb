package websocketPkg

import (
	"ShopAssist/pkg/nlp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// nlpWebSocketClient carries classification requests over a single websocket
// connection. Requests are serialised so every answer pairs with its request.
type nlpWebSocketClient struct {
	url          string
	log          *logrus.Logger
	conn         *websocket.Conn
	mu           sync.Mutex
	slot         chan struct{}
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	done         chan struct{}
	closeOnce    sync.Once
}

func NewNLPWebSocketClient(url string, timeout time.Duration, log *logrus.Logger) nlp.Transport {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &nlpWebSocketClient{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  timeout,
		writeTimeout: 5 * time.Second,
		done:         make(chan struct{}),
		slot:         make(chan struct{}, 1),
	}

	go client.connectInBackground()

	return client
}

func (c *nlpWebSocketClient) connectInBackground() {
	if _, err := c.ensureConnected(); err != nil {
		c.log.WithFields(logrus.Fields{
			"url":   c.url,
			"error": err.Error(),
		}).Warn("Initial connection to NLP service failed, will retry on demand")
		return
	}
	c.log.WithField("url", c.url).Info("Connected to NLP service")
}

// ensureConnected dials only when there is no live connection. c.mu must not be held.
func (c *nlpWebSocketClient) ensureConnected() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.dialLocked(); err != nil {
			return nil, err
		}
	}
	return c.conn, nil
}

func (c *nlpWebSocketClient) dialLocked() error {
	select {
	case <-c.done:
		return fmt.Errorf("websocket client closed")
	default:
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, resp, err := dialer.Dial(c.url, nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= http.StatusBadRequest {
			return &nlp.ServiceError{StatusCode: resp.StatusCode, Body: "websocket handshake rejected"}
		}
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("Error sending pong")
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *nlpWebSocketClient) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

func (c *nlpWebSocketClient) Parse(ctx context.Context, text string) (*nlp.ClassificationResult, error) {
	resp, err := c.roundTrip(ctx, nlp.OpParse, text)
	if err != nil {
		return nil, err
	}

	result, _, err := resp.Unwrap(nlp.OpParse)
	return result, err
}

func (c *nlpWebSocketClient) Classify(ctx context.Context, text string) (*nlp.Intent, error) {
	resp, err := c.roundTrip(ctx, nlp.OpClassify, text)
	if err != nil {
		return nil, err
	}

	_, intent, err := resp.Unwrap(nlp.OpClassify)
	return intent, err
}

func (c *nlpWebSocketClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("Ping to NLP service failed, marking connection as dead")
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

func (c *nlpWebSocketClient) dropConnection(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == conn {
		c.conn = nil
	}
	conn.Close()
}

func (c *nlpWebSocketClient) roundTrip(ctx context.Context, op string, text string) (*nlp.Response, error) {
	// One request is on the wire at a time; queued callers give up when their
	// context ends and never write an expired request.
	select {
	case c.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, &nlp.ServiceUnavailableError{Err: ctx.Err()}
	}
	defer func() { <-c.slot }()

	if err := ctx.Err(); err != nil {
		return nil, &nlp.ServiceUnavailableError{Err: err}
	}

	conn, err := c.ensureConnected()
	if err != nil {
		var svcErr *nlp.ServiceError
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, &nlp.ServiceUnavailableError{Err: err}
	}

	req := nlp.Request{
		ID:   uuid.NewString(),
		Op:   op,
		Text: text,
	}

	payload, err := jsoniter.Marshal(req)
	if err != nil {
		return nil, err
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.dropConnection(conn)
		return nil, &nlp.ServiceUnavailableError{Err: fmt.Errorf("error sending %s request: %w", op, err)}
	}

	readDeadline := time.Now().Add(c.readTimeout)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(readDeadline) {
		readDeadline = deadline
	}
	conn.SetReadDeadline(readDeadline)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.dropConnection(conn)
			return nil, &nlp.ServiceUnavailableError{Err: fmt.Errorf("error reading %s response: %w", op, err)}
		}

		var resp nlp.Response
		if err := jsoniter.Unmarshal(message, &resp); err != nil {
			return nil, &nlp.ServiceError{StatusCode: http.StatusBadGateway, Body: "malformed response: " + err.Error()}
		}

		// Answers to requests that already timed out on a previous call are skipped.
		if resp.ID != "" && resp.ID != req.ID {
			c.log.WithField("response_id", resp.ID).Debug("Discarding stale NLP response")
			continue
		}

		conn.SetReadDeadline(time.Time{})
		conn.SetWriteDeadline(time.Time{})
		return &resp, nil
	}
}
