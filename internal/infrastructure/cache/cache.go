package cache

import (
	"context"
	"sync"
	"time"

	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// Cache интерфейс для кэширования данных
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}

// InMemoryCache реализация in-memory кэша
type InMemoryCache struct {
	mu     sync.RWMutex
	items  map[string]cacheItem
	logger *zap.Logger
}

type cacheItem struct {
	value      interface{}
	expiration time.Time
}

// NewInMemoryCache создает кэш и запускает очистку устаревших записей,
// которая останавливается вместе с ctx
func NewInMemoryCache(ctx context.Context, cleanupInterval time.Duration, logger *zap.Logger) *InMemoryCache {
	c := &InMemoryCache{
		items:  make(map[string]cacheItem),
		logger: logger,
	}
	go c.startCleanup(ctx, cleanupInterval)
	return c
}

// Get возвращает значение по ключу
func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	start := time.Now()

	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	hit := exists && time.Now().Before(item.expiration)
	metrics.ObserveCacheRequest("get", hit, time.Since(start))
	if !hit {
		return nil, false
	}
	return item.value, true
}

// Set устанавливает значение по ключу с TTL
func (c *InMemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
}

// Delete удаляет значение по ключу
func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len количество записей, включая еще не удаленные устаревшие
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *InMemoryCache) startCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if cleaned := c.removeExpired(time.Now()); cleaned > 0 {
				c.logger.Debug("cache cleanup", zap.Int("removed", cleaned))
			}
		}
	}
}

func (c *InMemoryCache) removeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			cleaned++
		}
	}
	return cleaned
}
