package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
)

const (
	// Redis key prefix for visitor records
	visitorKeyPrefix = "visitor:"
	// Set of all visitor ids, maintained alongside the record keys so List
	// does not need SCAN.
	visitorIndexKey = "visitors"
)

// RedisStore persists visitor records as JSON values in Redis.
// Execute serializes same-key writers with WATCH/MULTI optimistic locking.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed visitor store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) visitorKey(visitorID id.VisitorID) string {
	return visitorKeyPrefix + visitorID.String()
}

// Create persists a new record, rejecting duplicate ids.
func (s *RedisStore) Create(ctx context.Context, record *models.VisitorRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal visitor: %w", err)
	}

	key := s.visitorKey(record.ID)
	ok, err := s.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("create visitor: %w", err)
	}
	if !ok {
		return fmt.Errorf("visitor %s already registered: %w", record.ID, sentinel.ErrConflict)
	}
	if err := s.client.SAdd(ctx, visitorIndexKey, record.ID.String()).Err(); err != nil {
		return fmt.Errorf("index visitor: %w", err)
	}
	return nil
}

// FindByID retrieves one record.
func (s *RedisStore) FindByID(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error) {
	data, err := s.client.Get(ctx, s.visitorKey(visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("visitor not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get visitor: %w", err)
	}

	var record models.VisitorRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("unmarshal visitor: %w", err)
	}
	return &record, nil
}

// List returns all records via the id index and a pipelined multi-get.
func (s *RedisStore) List(ctx context.Context) ([]*models.VisitorRecord, error) {
	ids, err := s.client.SMembers(ctx, visitorIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list visitor ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(ids))
	for _, rawID := range ids {
		cmds = append(cmds, pipe.Get(ctx, visitorKeyPrefix+rawID))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get visitors: %w", err)
	}

	records := make([]*models.VisitorRecord, 0, len(cmds))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			// Index entry without a record key; skip rather than fail the view.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get visitor: %w", err)
		}
		var record models.VisitorRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, fmt.Errorf("unmarshal visitor: %w", err)
		}
		records = append(records, &record)
	}
	return records, nil
}

// Execute atomically validates and mutates a record under optimistic lock.
func (s *RedisStore) Execute(ctx context.Context, visitorID id.VisitorID, validate func(*models.VisitorRecord) error, mutate func(*models.VisitorRecord)) (*models.VisitorRecord, error) {
	key := s.visitorKey(visitorID)
	var result *models.VisitorRecord

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return sentinel.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get visitor for execute: %w", err)
		}

		var record models.VisitorRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return fmt.Errorf("unmarshal visitor: %w", err)
		}

		if err := validate(&record); err != nil {
			return err // Domain error from callback - passed through unchanged
		}

		mutate(&record)

		newData, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("marshal visitor: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, 0)
			return nil
		})
		if err != nil {
			return err
		}

		result = &record
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// A concurrent writer raced this transition; callers serialize
		// per-key operations, so surface it as a conflict rather than retrying
		// a non-idempotent transition blindly.
		return nil, fmt.Errorf("visitor %s modified concurrently: %w", visitorID, sentinel.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ VisitorStore = (*RedisStore)(nil)
