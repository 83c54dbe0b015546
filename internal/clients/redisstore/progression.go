package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
)

// ProgressionStore is the server-side replacement for the browser
// localStorage usage: skill-progression state and demo-mode flags as
// namespaced JSON values.
type ProgressionStore interface {
	GetSkillProgression(ctx context.Context, studentID, skill string) (map[string]any, error)
	PutSkillProgression(ctx context.Context, studentID, skill string, state map[string]any) error
	SetDemoFlag(ctx context.Context, studentID, flag string, on bool) error
	GetDemoFlag(ctx context.Context, studentID, flag string) (bool, error)
	Close() error
}

type progressionStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewProgressionStore(log *logger.Logger) (ProgressionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "pathfinity"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &progressionStore{
		log:    log.With("service", "ProgressionStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    30 * 24 * time.Hour,
	}, nil
}

func (s *progressionStore) key(parts ...string) string {
	return s.prefix + ":" + strings.Join(parts, ":")
}

func (s *progressionStore) GetSkillProgression(ctx context.Context, studentID, skill string) (map[string]any, error) {
	raw, err := s.rdb.Get(ctx, s.key("progression", studentID, skill)).Result()
	if err == goredis.Nil {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get progression: %w", err)
	}
	var state map[string]any
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("progression decode: %w", err)
	}
	return state, nil
}

func (s *progressionStore) PutSkillProgression(ctx context.Context, studentID, skill string, state map[string]any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("progression encode: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key("progression", studentID, skill), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set progression: %w", err)
	}
	return nil
}

func (s *progressionStore) SetDemoFlag(ctx context.Context, studentID, flag string, on bool) error {
	val := "0"
	if on {
		val = "1"
	}
	if err := s.rdb.Set(ctx, s.key("demo", studentID, flag), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set demo flag: %w", err)
	}
	return nil
}

func (s *progressionStore) GetDemoFlag(ctx context.Context, studentID, flag string) (bool, error) {
	raw, err := s.rdb.Get(ctx, s.key("demo", studentID, flag)).Result()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get demo flag: %w", err)
	}
	return raw == "1", nil
}

func (s *progressionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
