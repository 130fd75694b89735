package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Item represents a task write that should be replayed once the primary
// store is reachable again. TaskID and Owner identify the target row; for
// updates, Patch holds the serialized field subset.
type Item struct {
	ID        string          `json:"id"`
	TaskID    int64           `json:"task_id"`
	Owner     string          `json:"owner"`
	Operation string          `json:"operation"`
	Patch     json.RawMessage `json:"patch,omitempty"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
