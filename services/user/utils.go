package user

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"kisansaarthi/utils"

	"go.uber.org/zap"
)

// saveJSON stores v under key with the given TTL.
func saveJSON(ctx context.Context, kv utils.KV, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		utils.GetLogger().Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		return err
	}
	if err := kv.Set(ctx, key, string(data), ttl); err != nil {
		utils.GetLogger().Error("Failed to save cache entry", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// loadJSON reads key into v. found is false on a cache miss.
func loadJSON(ctx context.Context, kv utils.KV, key string, v interface{}) (found bool, err error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, utils.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		utils.GetLogger().Error("Failed to get cache entry", zap.String("key", key), zap.Error(err))
		return false, err
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		utils.GetLogger().Error("Failed to unmarshal cache entry", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return true, nil
}

func codesMatch(want, got string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
