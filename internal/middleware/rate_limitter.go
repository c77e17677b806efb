package middleware

import (
	"ShopAssist/internal/entity"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per shopper, or per IP before login.
// Buckets idle longer than limiterIdleTTL are swept on the next access.
type rateLimiter struct {
	visitors  map[string]*visitor
	rate      rate.Limit
	burstSize int
	mutex     sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      reqRate,
		burstSize: burstSize,
		now:       time.Now,
	}
}

func (r *rateLimiter) allow(key string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) > limiterIdleTTL {
		for k, v := range r.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(r.visitors, k)
			}
		}
		r.lastSweep = now
	}

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (r *rateLimiter) size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.visitors)
}

func limiterKey(ctx *fiber.Ctx) string {
	if user, ok := ctx.Locals("user").(entity.UserLoginData); ok && user.ID != "" {
		return "user:" + user.ID
	}
	return "ip:" + ctx.IP()
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	key := limiterKey(ctx)

	if !m.rateLimitter.allow(key) {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"limiter":    key,
		}).Warn("Too many chat requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests",
			"code":  "RATE_LIMITED",
		})
	}

	return ctx.Next()
}
