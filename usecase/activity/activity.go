package activity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
	"github.com/fastygo/studyplanner/usecase"
)

// UseCase serves the activity REST resource. When the database rejects a
// write for infrastructure reasons the write is handed to the buffer.
type UseCase struct {
	activities repository.RecordStore
	buffer     usecase.OperationBuffer
	logger     *zap.Logger
}

func New(activities repository.RecordStore, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities: activities,
		buffer:     buffer,
		logger:     logger,
	}
}

func (uc *UseCase) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	return uc.activities.List(ctx)
}

func (uc *UseCase) GetActivity(ctx context.Context, id domain.ID) (*domain.Activity, error) {
	return uc.activities.GetByID(ctx, id)
}

func (uc *UseCase) CreateActivity(ctx context.Context, draft domain.Draft) (*domain.Activity, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	draft = draft.Normalize()

	created, err := uc.activities.Create(ctx, draft)
	if err != nil {
		pending := draft.NewActivity(domain.ID(uuid.NewString()))
		if draft.Completed != nil {
			pending.Completed = *draft.Completed
		}
		if uc.shouldBuffer(ctx, usecase.OperationCreate, &pending, err) {
			return &pending, nil
		}
		return nil, err
	}
	return created, nil
}

// UpdateActivity replaces the record's fields. Completed is kept unless the
// draft carries it.
func (uc *UseCase) UpdateActivity(ctx context.Context, id domain.ID, draft domain.Draft) (*domain.Activity, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	draft = draft.Normalize()

	existing, err := uc.activities.GetByID(ctx, id)
	if err != nil {
		// Without the stored record only a draft that sets completed is a
		// full replacement.
		if draft.Completed == nil {
			return nil, err
		}
		pending := draft.Apply(domain.Activity{ID: id})
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, &pending, err) {
			return &pending, nil
		}
		return nil, err
	}

	updated := draft.Apply(*existing)
	if err := uc.activities.Update(ctx, &updated); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, &updated, err) {
			return &updated, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (uc *UseCase) DeleteActivity(ctx context.Context, id domain.ID) error {
	if err := uc.activities.Delete(ctx, id); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Activity{ID: id}, err) {
			return nil
		}
		return err
	}
	return nil
}

// shouldBuffer hands infrastructure failures to the buffer. Domain errors
// such as NOT_FOUND are never buffered.
func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, activity *domain.Activity, cause error) bool {
	var dErr *domain.Error
	if uc.buffer == nil || errors.As(cause, &dErr) || errors.Is(cause, context.Canceled) {
		return false
	}
	if err := uc.buffer.BufferActivity(ctx, operation, activity); err != nil {
		uc.logger.Error("failed to buffer activity operation",
			zap.String("operation", operation),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return false
	}
	uc.logger.Warn("activity operation buffered",
		zap.String("operation", operation),
		zap.String("activity_id", activity.ID.String()),
		zap.NamedError("cause", cause))
	return true
}
