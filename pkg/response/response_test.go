package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type upstreamError struct{ status int }

func (e *upstreamError) Error() string { return "upstream failed" }

func TestWrap(t *testing.T) {
	base := NewError(http.StatusBadGateway, "classification service rejected the request")
	cause := &upstreamError{status: 400}

	err := Wrap(base, cause)

	assert.True(t, errors.Is(err, base))
	var target *upstreamError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 400, target.status)
	assert.Equal(t, "classification service rejected the request: upstream failed", err.Error())
	assert.Equal(t, http.StatusBadGateway, StatusOf(err, http.StatusInternalServerError))
}

func TestError_Is(t *testing.T) {
	a := NewError(http.StatusBadRequest, "invalid chat request")
	b := NewError(http.StatusBadRequest, "invalid chat request")
	c := NewError(http.StatusConflict, "invalid chat request")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
	assert.Equal(t, http.StatusTeapot, StatusOf(errors.New("plain"), http.StatusTeapot))
}
