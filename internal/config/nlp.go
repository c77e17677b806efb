package config

import (
	"ShopAssist/pkg/nlp"
	redisPkg "ShopAssist/pkg/redis"
	websocketPkg "ShopAssist/pkg/websocket"
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewNLPClient assembles the classification client from NLP_* settings.
func NewNLPClient(log *logrus.Logger, cfg *nlp.Config) (*nlp.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nlp config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var transport nlp.Transport
	switch cfg.Transport {
	case nlp.TransportWebSocket:
		transport = websocketPkg.NewNLPWebSocketClient(cfg.ServiceURL, cfg.Timeout, log)
	default:
		transport = nlp.NewHTTPTransport(cfg.ServiceURL, cfg.Timeout)
	}

	opts := []nlp.Option{}

	switch cfg.CacheBackend {
	case nlp.CacheBackendRedis:
		redisClient := redisPkg.New(log)
		opts = append(opts,
			nlp.WithParseCache(nlp.NewRedisCache[*nlp.ClassificationResult](redisClient, "nlp:parse:", cfg.CacheTTL, log)),
			nlp.WithIntentCache(nlp.NewRedisCache[*nlp.Intent](redisClient, "nlp:classify:", cfg.CacheTTL, log)),
		)
	default:
		opts = append(opts,
			nlp.WithParseCache(nlp.NewMemoryCache[*nlp.ClassificationResult](cfg.CacheSize, cfg.CacheTTL)),
			nlp.WithIntentCache(nlp.NewMemoryCache[*nlp.Intent](cfg.CacheSize, cfg.CacheTTL)),
		)
	}

	if cfg.SingleFlight {
		opts = append(opts, nlp.WithSingleFlight())
	}

	log.WithFields(logrus.Fields{
		"transport":     cfg.Transport,
		"cache_backend": cfg.CacheBackend,
		"cache_size":    cfg.CacheSize,
		"cache_ttl":     cfg.CacheTTL.String(),
		"single_flight": cfg.SingleFlight,
	}).Info("Classification client configured")

	return nlp.NewClient(log, transport, opts...), nil
}
