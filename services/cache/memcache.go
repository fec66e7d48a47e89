package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/philippdrebes/MSCIDS-CIP02/logger"
)

// MemcacheService implements CacheService using memcache
type MemcacheService struct {
	client *memcache.Client
	log    *logger.Logger
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
		log:    logger.ForCache(),
	}
}

// Get retrieves a value from memcache. A miss is reported as-is; any other
// error is logged here because callers treat every error as a miss.
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			m.log.Warn().Err(err).Str("key", key).Msg("Cache lookup degraded")
		}
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(key)
}
