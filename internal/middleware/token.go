package middleware

import (
	jwtPkg "ShopAssist/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const unauthorizedMessage = "Unauthorized, access token invalid or expired"

// NewTokenMiddleware stores the verified shopper under the "user" local.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	fields := logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"client_ip":  ctx.IP(),
	}

	token, err := jwtPkg.BearerToken(ctx)
	if err == nil {
		var claims *jwtPkg.AccessClaims
		if claims, err = jwtPkg.Verify(token); err == nil {
			ctx.Locals("user", claims.User())
			return ctx.Next()
		}
	}

	fields["error"] = err.Error()
	m.log.WithFields(fields).Warn("Rejected chat request without a valid access token")

	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": unauthorizedMessage,
		"code":  "UNAUTHORIZED",
	})
}
