package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

// Client is the subset of *redislib.Client the activity store needs.
type Client interface {
	Get(ctx context.Context, key string) *redislib.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redislib.StatusCmd
}

type activityStore struct {
	client Client
	key    string
}

// NewActivityStore creates a Redis-backed snapshot store. The collection
// lives under prefix+key without expiry.
func NewActivityStore(client Client, prefix, key string) repository.SnapshotStore {
	if key == "" {
		key = repository.DefaultSnapshotKey
	}
	return &activityStore{
		client: client,
		key:    fmt.Sprintf("%s%s", prefix, key),
	}
}

func (r *activityStore) Load(ctx context.Context) ([]domain.Activity, error) {
	result, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, repository.ErrNoSnapshot
		}
		return nil, err
	}
	return repository.DecodeSnapshot([]byte(result))
}

func (r *activityStore) SaveAll(ctx context.Context, activities []domain.Activity) error {
	payload, err := repository.EncodeSnapshot(activities)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, payload, 0).Err()
}
