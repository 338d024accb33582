package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store keeps the front-end's multi-step form state per chat, keyed by
// the external chat id. The booking core never reads it; the front-end
// calls the core only with fully-validated, complete requests.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// State is the current conversation step plus its collected data.
type State struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data,omitempty"`
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func key(chatID int64) string {
	return "session:" + strconv.FormatInt(chatID, 10)
}

func (s *Store) Get(ctx context.Context, chatID int64) (*State, error) {
	raw, err := s.rdb.Get(ctx, key(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) Set(ctx context.Context, chatID int64, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(chatID), raw, s.ttl).Err()
}

func (s *Store) Clear(ctx context.Context, chatID int64) error {
	return s.rdb.Del(ctx, key(chatID)).Err()
}
