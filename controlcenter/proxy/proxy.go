package proxy

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores resolved service URLs for a while.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis string keys.
type RedisCache struct {
	Client *redis.Client
}

func (c RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

type Resolver interface {
	ServiceURL(ctx context.Context, serviceName string) (string, error)
}

// Router forwards requests to services found through Resolver, caching the
// answers in Cache for TTL.
type Router struct {
	Cache    Cache
	Resolver Resolver
	Client   *http.Client
	TTL      time.Duration
}

func NewRouter(cache Cache, resolver Resolver) *Router {
	return &Router{
		Cache:    cache,
		Resolver: resolver,
		Client:   &http.Client{Timeout: 10 * time.Second},
		TTL:      30 * time.Second,
	}
}

// ServiceURL tries the cache first and falls back to the resolver.
func (rt *Router) ServiceURL(ctx context.Context, service string) (string, error) {
	key := service + "_url"
	if url, err := rt.Cache.Get(ctx, key); err == nil && url != "" {
		return url, nil
	}

	url, err := rt.Resolver.ServiceURL(ctx, service)
	if err != nil {
		return "", fmt.Errorf("failed to lookup %s: %w", service, err)
	}

	if err := rt.Cache.Set(ctx, key, url, rt.TTL); err != nil {
		log.Println("⚠️ Failed to cache service URL:", err)
	}
	return url, nil
}

// Proxy forwards the request path, query, method and body to service.
func (rt *Router) Proxy(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseURL, err := rt.ServiceURL(r.Context(), service)
		if err != nil {
			http.Error(w, "Failed to locate service", http.StatusServiceUnavailable)
			log.Println("❌", err)
			return
		}

		target := baseURL + r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
		if err != nil {
			http.Error(w, "Failed to build request", http.StatusInternalServerError)
			return
		}
		req.Header = r.Header.Clone()

		resp, err := rt.Client.Do(req)
		if err != nil {
			http.Error(w, "Failed to reach service", http.StatusBadGateway)
			log.Println("❌", err)
			return
		}
		defer resp.Body.Close()

		for k, v := range resp.Header {
			w.Header()[k] = v
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Println("❌ Failed to forward response:", err)
		}
	}
}
