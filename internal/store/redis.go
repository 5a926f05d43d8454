// Package store persists draft snapshots and the completed-draft
// history in redis as plain key-value entries.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/golfdraft-io/golfdraft/internal/snapshot"
)

// Rdb is the global Redis client. Connect it once at application startup.
var Rdb *redis.Client

// Default keys for the single persisted snapshot and the history list.
var (
	DefaultSnapshotKey = "golfdraft:snapshot"
	DefaultHistoryKey  = "golfdraft:history"
)

// HistoryLimit caps the history list; the oldest entry is evicted when
// an eleventh completed draft is appended.
const HistoryLimit = 10

// ConnectRedis initializes the global Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// RedisStore reads and writes snapshots and history through the global
// client under configurable keys.
type RedisStore struct {
	SnapshotKey string
	HistoryKey  string
}

// NewRedisStore picks up SNAPSHOT_KEY / HISTORY_KEY overrides from the
// environment.
func NewRedisStore() *RedisStore {
	return &RedisStore{
		SnapshotKey: getEnv("SNAPSHOT_KEY", DefaultSnapshotKey),
		HistoryKey:  getEnv("HISTORY_KEY", DefaultHistoryKey),
	}
}

// SaveSnapshot overwrites the single persisted snapshot entry.
func (s *RedisStore) SaveSnapshot(ctx context.Context, snap snapshot.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := Rdb.Set(ctx, s.SnapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to SET snapshot key '%s': %w", s.SnapshotKey, err)
	}
	return nil
}

// LoadSnapshot returns the persisted snapshot, or (nil, nil) when none
// has been stored yet.
func (s *RedisStore) LoadSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	data, err := Rdb.Get(ctx, s.SnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to GET snapshot key '%s': %w", s.SnapshotKey, err)
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal persisted snapshot: %w", err)
	}
	return &snap, nil
}

// AppendHistory pushes a completed draft onto the front of the history
// list and trims it to HistoryLimit entries.
func (s *RedisStore) AppendHistory(ctx context.Context, entry snapshot.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	if err := Rdb.LPush(ctx, s.HistoryKey, data).Err(); err != nil {
		return fmt.Errorf("failed to LPUSH to history list '%s': %w", s.HistoryKey, err)
	}
	if err := Rdb.LTrim(ctx, s.HistoryKey, 0, HistoryLimit-1).Err(); err != nil {
		return fmt.Errorf("failed to LTRIM history list '%s': %w", s.HistoryKey, err)
	}
	return nil
}

// LoadHistory returns the archived drafts, most recent first.
func (s *RedisStore) LoadHistory(ctx context.Context) ([]snapshot.HistoryEntry, error) {
	raw, err := Rdb.LRange(ctx, s.HistoryKey, 0, HistoryLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to LRANGE history list '%s': %w", s.HistoryKey, err)
	}
	entries := make([]snapshot.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry snapshot.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// A single corrupt entry should not hide the rest.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
