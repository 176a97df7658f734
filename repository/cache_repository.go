package repository

import "time"

// CacheRepository is a string key/value cache. A zero ttl never expires.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
}
