package domain

import "time"

// Default classification values applied when a caller supplies none.
const (
	DefaultCategory = "📌"
	DefaultPriority = "🟢"
)

// Validation bounds for task text fields, applied after trimming.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// Task represents a single todo item. OwnerID is empty when the task
// lives in the single-user in-memory store.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch is a partial update. A nil field means "leave unchanged";
// a non-nil pointer to an empty value means "set to empty". The two are
// never conflated.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// IsEmpty reports whether the patch carries no changes.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Priority == nil && p.Completed == nil
}

// Apply copies the supplied fields onto the task, leaving the rest alone.
// Identity and ownership are never patched.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
