package bolt

import (
	"context"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

type activityStore struct {
	db     *bbolt.DB
	bucket []byte
	key    []byte
}

// NewActivityStore keeps the activity collection under a single key of a
// Bolt bucket. The bucket is created when missing.
func NewActivityStore(db *bbolt.DB, bucket, key string) (repository.SnapshotStore, error) {
	if db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}
	if bucket == "" {
		bucket = "activities"
	}
	if key == "" {
		key = repository.DefaultSnapshotKey
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		return nil, fmt.Errorf("ensure bucket %s: %w", bucket, err)
	}
	return &activityStore{db: db, bucket: []byte(bucket), key: []byte(key)}, nil
}

func (s *activityStore) Load(ctx context.Context) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get(s.key); v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, repository.ErrNoSnapshot
	}
	return repository.DecodeSnapshot(payload)
}

func (s *activityStore) SaveAll(ctx context.Context, activities []domain.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := repository.EncodeSnapshot(activities)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put(s.key, payload)
	})
}
