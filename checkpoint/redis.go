package checkpoint

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "peggo:checkpoint:"

// saveScript sets KEYS[1] to ARGV[1] unless the stored value is greater.
// It returns 1 when the value was written and 0 otherwise.
var saveScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur and tonumber(cur) > tonumber(ARGV[1]) then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

// Redis stores each checkpoint under its own key
type Redis struct {
	client redis.UniversalClient
}

var _ Store = (*Redis)(nil)

func OpenRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedis(rdb), nil
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

func (r *Redis) Load(ctx context.Context, key string) (uint64, bool, error) {
	val, err := r.client.Get(ctx, redisKey(key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to load checkpoint %s: %w", key, err)
	}
	h, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid checkpoint %s=%q: %w", key, val, err)
	}
	return h, true, nil
}

func (r *Redis) Save(ctx context.Context, key string, height uint64) error {
	written, err := saveScript.Run(ctx, r.client, []string{redisKey(key)}, strconv.FormatUint(height, 10)).Int()
	if err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", key, err)
	}
	if written == 0 {
		return fmt.Errorf("%w: key=%s, given=%d", ErrRegression, key, height)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
