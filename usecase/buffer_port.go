package usecase

import (
	"context"

	"github.com/todoforge/backend/domain"
)

// OperationBuffer absorbs writes that the primary store rejected because it
// was unreachable. Only operations that carry their own identity can be
// buffered: creates never are, because id assignment requires the store.
type OperationBuffer interface {
	BufferTaskPatch(ctx context.Context, id int64, owner string, patch domain.TaskPatch) error
	BufferTaskDelete(ctx context.Context, id int64, owner string) error
}
