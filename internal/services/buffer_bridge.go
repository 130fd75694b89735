package services

import (
	"context"
	"encoding/json"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/internal/infrastructure/buffer"
	"github.com/todoforge/backend/usecase"
)

// BufferBridge adapts the processor to the usecase.OperationBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTaskPatch(ctx context.Context, id int64, owner string, patch domain.TaskPatch) error {
	if b.processor == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	item := buffer.Item{
		TaskID:    id,
		Owner:     owner,
		Operation: buffer.OperationUpdate,
		Patch:     payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferTaskDelete(ctx context.Context, id int64, owner string) error {
	if b.processor == nil {
		return domain.ErrInvalidPayload
	}
	item := buffer.Item{
		TaskID:    id,
		Owner:     owner,
		Operation: buffer.OperationDelete,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
