package nlp

import (
	"context"
	"net/http"
)

const (
	OpParse    = "parse"
	OpClassify = "classify"
)

// Transport carries one request to the classification service and returns its
// decoded answer. Implementations report a non-2xx answer as *ServiceError and
// a missing answer as *ServiceUnavailableError.
type Transport interface {
	Parse(ctx context.Context, text string) (*ClassificationResult, error)
	Classify(ctx context.Context, text string) (*Intent, error)
	Close() error
}

type Request struct {
	ID   string `json:"id,omitempty"`
	Op   string `json:"op,omitempty"`
	Text string `json:"text"`
}

type Response struct {
	ID     string                `json:"id,omitempty"`
	OK     bool                  `json:"ok"`
	Status int                   `json:"status,omitempty"`
	Result *ClassificationResult `json:"result,omitempty"`
	Intent *Intent               `json:"intent,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// Unwrap turns a decoded envelope into the payload for op, or the error the
// envelope describes.
func (r *Response) Unwrap(op string) (*ClassificationResult, *Intent, error) {
	if !r.OK {
		status := r.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		return nil, nil, &ServiceError{StatusCode: status, Body: r.Error}
	}

	switch op {
	case OpParse:
		if r.Result == nil {
			return nil, nil, &ServiceError{StatusCode: http.StatusBadGateway, Body: "response has no result"}
		}
		return r.Result, nil, nil
	case OpClassify:
		if r.Intent == nil {
			return nil, nil, &ServiceError{StatusCode: http.StatusBadGateway, Body: "response has no intent"}
		}
		return nil, r.Intent, nil
	default:
		return nil, nil, &ServiceError{StatusCode: http.StatusBadGateway, Body: "unknown operation " + op}
	}
}
