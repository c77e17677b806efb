package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	u := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  blue hoodie \n", "blue hoodie"},
		{"composes to NFC", "cafe\u0301", "caf\u00e9"},
		{"blank becomes empty", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, u.NormalizeText(tt.in))
		})
	}

	t.Run("caps the length in runes", func(t *testing.T) {
		got := u.NormalizeText(strings.Repeat("é", 2500))
		assert.Equal(t, 2000, len([]rune(got)))
	})
}

func TestNewULIDFromTimestamp(t *testing.T) {
	now := time.Now()

	id, err := New().NewULIDFromTimestamp(now)
	require.NoError(t, err)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())
}

func TestNewSessionID(t *testing.T) {
	u := New()
	assert.NotEqual(t, u.NewSessionID(), u.NewSessionID())
}
