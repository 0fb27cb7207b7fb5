// Package middleware contains http middlewares.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"
)

// Storage keeps cached responses.
type Storage interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, content []byte, ttl time.Duration)
}

type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Cached caches successful responses of handler by request URI.
func Cached(storage Storage, ttl time.Duration, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.RequestURI

		if data := storage.Get(r.Context(), key); data != nil {
			var c cachedResponse
			if err := json.Unmarshal(data, &c); err == nil {
				if c.ContentType != "" {
					w.Header().Set("Content-Type", c.ContentType)
				}
				w.Header().Set("X-Cache", "HIT")
				_, _ = w.Write(c.Body)
				return
			}
		}

		c := httptest.NewRecorder()
		handler(c, r)

		for k, v := range c.Header() {
			w.Header()[k] = v
		}

		content := c.Body.Bytes()

		if c.Code == http.StatusOK {
			if data, err := json.Marshal(cachedResponse{
				ContentType: c.Header().Get("Content-Type"),
				Body:        content,
			}); err == nil {
				storage.Set(r.Context(), key, data, ttl)
			}
		}

		w.Header().Set("X-Cache", "MISS")
		w.WriteHeader(c.Code)
		_, _ = w.Write(content)
	}
}
