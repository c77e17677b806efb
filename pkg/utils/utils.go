package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/text/unicode/norm"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewSessionID() string
	NormalizeText(text string) string
}

type utils struct {
	maxTextLength int
}

func New() IUtils {
	return &utils{
		maxTextLength: 2000,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) NewSessionID() string {
	return uuid.NewString()
}

// NormalizeText composes the text to NFC and trims surrounding whitespace so
// visually identical messages share a cache entry.
func (u *utils) NormalizeText(text string) string {
	text = strings.TrimSpace(norm.NFC.String(text))

	runes := []rune(text)
	if len(runes) > u.maxTextLength {
		text = string(runes[:u.maxTextLength])
	}

	return text
}
