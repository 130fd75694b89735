package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "test")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_EnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	patch, _ := json.Marshal(map[string]string{"title": "renamed"})
	items := []Item{
		{TaskID: 1, Owner: "alice", Operation: OperationUpdate, Patch: patch},
		{TaskID: 2, Owner: "alice", Operation: OperationDelete},
	}
	for _, item := range items {
		if err := store.Enqueue(item); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 2 {
		t.Errorf("Size() = %d, want 2", size)
	}

	batch, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("GetBatch() returned %d items, want 2", len(batch))
	}
	for _, item := range batch {
		if item.ID == "" {
			t.Error("stored item has no id")
		}
		if item.Timestamp.IsZero() {
			t.Error("stored item has no timestamp")
		}
	}
}

func TestStore_PriorityOrdersTheBatch(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{TaskID: 1, Operation: OperationUpdate, Priority: 4}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := store.Enqueue(Item{TaskID: 2, Operation: OperationDelete, Priority: 1}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	batch, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("GetBatch() returned %d items, want 2", len(batch))
	}
	if batch[0].TaskID != 2 {
		t.Errorf("first item task = %d, want the higher-priority delete", batch[0].TaskID)
	}
}

func TestStore_RemoveAndRequeue(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{TaskID: 1, Operation: OperationDelete}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	batch, err := store.GetBatch(1)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("GetBatch() returned %d items, want 1", len(batch))
	}

	item := batch[0]
	item.Retries++
	if err := store.Requeue(item); err != nil {
		t.Fatalf("Requeue() error = %v", err)
	}

	// Requeue writes under a fresh key; removing the stale one leaves
	// exactly the retried copy.
	if err := store.Remove(batch[0]); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 1 {
		t.Fatalf("Size() = %d after removing the stale key, want 1", size)
	}

	remaining, err := store.GetBatch(1)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if remaining[0].Retries != 1 {
		t.Errorf("Retries = %d, want 1", remaining[0].Retries)
	}

	// Removing without a bucket key falls back to the item id.
	if err := store.Remove(Item{ID: remaining[0].ID}); err != nil {
		t.Fatalf("Remove() by id error = %v", err)
	}
	size, err = store.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 0 {
		t.Errorf("Size() = %d, want 0", size)
	}
}

func TestStore_Cleanup(t *testing.T) {
	store := openTestStore(t)

	old := Item{TaskID: 1, Operation: OperationDelete, Timestamp: time.Now().Add(-48 * time.Hour)}
	fresh := Item{TaskID: 2, Operation: OperationDelete}
	for _, item := range []Item{old, fresh} {
		if err := store.Enqueue(item); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	if err := store.Cleanup(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	batch, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if len(batch) != 1 || batch[0].TaskID != 2 {
		t.Errorf("after cleanup batch = %+v, want only the fresh item", batch)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.db")
	store, err := Open(path, "test")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Enqueue(Item{TaskID: 1, Operation: OperationDelete}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path, "test")
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	size, err := reopened.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 1 {
		t.Errorf("Size() = %d after reopen, want 1", size)
	}
}
