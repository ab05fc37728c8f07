package cache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"storefront/internal/logging"
)

func NewRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return client, nil
}

type cachingWriter struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (w *cachingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// ResponseCache is a coarse whole-response cache for GET endpoints, keyed by
// request URI with a fixed expiry. There is no invalidation beyond the TTL.
// A nil client disables caching entirely.
func ResponseCache(client *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			l := logging.FromContext(ctx)
			key := "respcache:" + c.Request().URL.RequestURI()

			if cached, err := client.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, cached)
			} else if err != redis.Nil {
				l.Warn("response_cache_read_error", "key", key, "error", err)
			}

			w := &cachingWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = w

			if err := next(c); err != nil {
				return err
			}

			if w.status == http.StatusOK && len(w.body) > 0 {
				if err := client.Set(ctx, key, w.body, ttl).Err(); err != nil {
					l.Warn("response_cache_write_error", "key", key, "error", err)
				}
			}
			return nil
		}
	}
}
