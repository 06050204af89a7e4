package repository

import (
	"context"
	"errors"

	"github.com/fastygo/studyplanner/domain"
)

// DefaultSnapshotKey is the namespaced key holding the local collection.
const DefaultSnapshotKey = "@student_activities"

// ErrNoSnapshot is returned by SnapshotStore.Load when nothing was ever saved.
var ErrNoSnapshot = errors.New("no activity snapshot stored")

// SnapshotStore persists the whole activity collection as one value.
// Every save overwrites the previous collection.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Activity, error)
	SaveAll(ctx context.Context, activities []domain.Activity) error
}

// RecordStore addresses one activity per call. Identifiers are assigned by
// the store on Create.
type RecordStore interface {
	List(ctx context.Context) ([]domain.Activity, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Activity, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) error
	Delete(ctx context.Context, id domain.ID) error
}

// ActivityRepository is the server-side record store. Upsert writes a record
// under its existing id and is used to replay buffered operations.
type ActivityRepository interface {
	RecordStore
	Upsert(ctx context.Context, activity *domain.Activity) error
}
