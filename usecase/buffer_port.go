package usecase

import (
	"context"

	"github.com/fastygo/studyplanner/domain"
)

// Buffered operation names.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the buffer processor so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferActivity(ctx context.Context, operation string, activity *domain.Activity) error
}
