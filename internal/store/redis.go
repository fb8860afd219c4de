package store

import (
	log "github.com/sirupsen/logrus"
	r "gopkg.in/redis.v5"

	"pcsoft.com/lumo/internal/metrics"
)

const redisPrefix = "_LUMO_"

// RedisStore is a KeyValueStore kept in redis under a fixed key prefix.
type RedisStore struct {
	client *r.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	var opts *r.Options
	var err error

	if opts, err = r.ParseURL(url); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: r.NewClient(opts),
	}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(key string) (string, bool) {
	value, err := s.client.Get(redisPrefix + key).Result()
	if err != nil {
		if err != r.Nil {
			s.fail("get", key, err)
		}
		return "", false
	}
	return value, true
}

func (s *RedisStore) Set(key, value string) {
	if err := s.client.Set(redisPrefix+key, value, 0).Err(); err != nil {
		s.fail("set", key, err)
	}
}

func (s *RedisStore) Remove(key string) {
	if err := s.client.Del(redisPrefix + key).Err(); err != nil {
		s.fail("remove", key, err)
	}
}

// Clear removes only the keys written through this store.
func (s *RedisStore) Clear() {
	keys, err := s.client.Keys(redisPrefix + "*").Result()
	if err != nil {
		s.fail("clear", "", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(keys...).Err(); err != nil {
		s.fail("clear", "", err)
	}
}

func (s *RedisStore) fail(op, key string, err error) {
	metrics.KVFailures.WithLabelValues("redis", op).Inc()
	log.WithFields(log.Fields{"op": op, "key": key}).WithError(err).Warn("redis storage operation failed")
}
