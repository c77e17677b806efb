package chat

import "ShopAssist/pkg/response"

var (
	ErrInvalidRequest            = response.NewError(400, "invalid chat request")
	ErrInvalidText               = response.NewError(400, "text must not be empty")
	ErrClassificationRejected    = response.NewError(502, "classification service rejected the request")
	ErrClassificationUnavailable = response.NewError(503, "classification service unavailable")
)
