package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenVersionPrefix = "auth:user:tokenver"
	tokenVersionTTL    = 30 * time.Minute
)

// TokenVersionRepository 缓存用户当前 token 版本，鉴权热路径省一次 DB 读。
// 未命中回源 MySQL 后由调用方回填；版本提升时删 key 即可
type TokenVersionRepository struct{}

func (r *TokenVersionRepository) Get(ctx context.Context, userID string) (int64, bool, error) {
	key := fmt.Sprintf("%s:%s", tokenVersionPrefix, userID)
	val, err := Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return version, true, nil
}

func (r *TokenVersionRepository) Set(ctx context.Context, userID string, version int64) error {
	key := fmt.Sprintf("%s:%s", tokenVersionPrefix, userID)
	return Client.Set(ctx, key, strconv.FormatInt(version, 10), tokenVersionTTL).Err()
}

func (r *TokenVersionRepository) Delete(ctx context.Context, userID string) error {
	key := fmt.Sprintf("%s:%s", tokenVersionPrefix, userID)
	return Client.Del(ctx, key).Err()
}
