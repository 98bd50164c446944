package verification

import (
	"alcyxob/fitness-planner/internal/logger"
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "verify:"

// checkCode consumes the code on a match. A miss bumps the attempt counter,
// which shares the code's expiry; the code is dropped once ARGV[2] misses
// have been counted.
var checkCode = goredis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return 0
end
if stored == ARGV[1] then
	redis.call("DEL", KEYS[1], KEYS[2])
	return 1
end
local misses = redis.call("INCR", KEYS[2])
if misses == 1 then
	local ttl = redis.call("PTTL", KEYS[1])
	if ttl > 0 then
		redis.call("PEXPIRE", KEYS[2], ttl)
	end
end
if misses >= tonumber(ARGV[2]) then
	redis.call("DEL", KEYS[1], KEYS[2])
end
return 0
`)

type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisStore connects to redis and checks the connection.
func NewRedisStore(log *logger.Logger, addr, password string, db int) (Store, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{log: log.With("service", "RedisVerificationStore"), rdb: rdb}, nil
}

// Both keys hash to the same cluster slot.
func codeKeys(userID string) (code, attempts string) {
	base := keyPrefix + "{" + userID + "}"
	return base, base + ":attempts"
}

func (s *redisStore) Save(ctx context.Context, userID, code string, ttl time.Duration) error {
	codeKey, attemptsKey := codeKeys(userID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, codeKey, code, ttl)
		pipe.Del(ctx, attemptsKey)
		return nil
	})
	return err
}

func (s *redisStore) Verify(ctx context.Context, userID, code string) (bool, error) {
	codeKey, attemptsKey := codeKeys(userID)
	n, err := checkCode.Run(ctx, s.rdb, []string{codeKey, attemptsKey}, code, MaxAttempts).Int()
	if err != nil {
		s.log.Error("verification check failed", "user_id", userID, "error", err)
		return false, err
	}
	return n == 1, nil
}
