package cache

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const statePrefix = "oauth_state:"

// ErrStateNotFound is returned when an OAuth state is unknown, expired or already used
var ErrStateNotFound = errors.New("oauth state not found")

// StateStore keeps one-time OAuth state values for the login round trip
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) error
}

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

type redisStateStore struct {
	rdb *redis.Client
}

func NewRedisStateStore(rdb *redis.Client) StateStore {
	return &redisStateStore{rdb: rdb}
}

func (s *redisStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.rdb.Set(ctx, statePrefix+state, "1", ttl).Err()
}

func (s *redisStateStore) Consume(ctx context.Context, state string) error {
	_, err := s.rdb.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return ErrStateNotFound
	}
	return err
}

// memoryStateStore is used when no REDIS_URL is configured. It only works
// for a single process.
type memoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

func NewMemoryStateStore() StateStore {
	return &memoryStateStore{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *memoryStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(ttl)
	return nil
}

func (s *memoryStateStore) Consume(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.states[state]
	if !ok {
		return ErrStateNotFound
	}
	delete(s.states, state)
	if s.now().After(exp) {
		return ErrStateNotFound
	}
	return nil
}
