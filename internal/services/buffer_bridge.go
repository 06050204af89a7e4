package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/internal/infrastructure/buffer"
	"github.com/fastygo/studyplanner/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferActivity(ctx context.Context, operation string, activity *domain.Activity) error {
	if b.processor == nil || activity == nil || activity.ID == "" {
		return domain.ErrInvalidPayload
	}
	item := buffer.Item{
		ActivityID: activity.ID.String(),
		Operation:  operation,
	}
	if operation != buffer.OperationDelete {
		payload, err := json.Marshal(activity)
		if err != nil {
			return err
		}
		item.Data = payload
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
