package jwtPkg

import (
	"ShopAssist/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenSecretEnv = "JWT_ACCESS_TOKEN_SECRET"

var (
	ErrMissingToken   = errors.New("missing bearer token")
	ErrSecretNotSet   = fmt.Errorf("%s not set", AccessTokenSecretEnv)
	ErrMissingSubject = errors.New("token has no user id")
)

// AccessClaims identifies the shopper a chat turn belongs to.
type AccessClaims struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) User() entity.UserLoginData {
	return entity.UserLoginData{
		ID:       c.ID,
		Email:    c.Email,
		Username: c.Username,
	}
}

func secret() ([]byte, error) {
	key := os.Getenv(AccessTokenSecretEnv)
	if key == "" {
		return nil, ErrSecretNotSet
	}
	return []byte(key), nil
}

// Sign mints an HS256 access token for user that expires after ttl.
func Sign(user entity.UserLoginData, ttl time.Duration) (string, int64, error) {
	key, err := secret()
	if err != nil {
		return "", 0, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := AccessClaims{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, expiresAt.Unix(), nil
}

// Verify parses an access token, accepting HS256 only. Tokens without a user
// id are rejected.
func Verify(tokenString string) (*AccessClaims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	claims := &AccessClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if claims.ID == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals("user").(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}
	return user, nil
}
