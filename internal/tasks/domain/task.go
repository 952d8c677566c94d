package domain

import "time"

// Task is a single to-do item. Owner is set on creation and never changes.
type Task struct {
	ID          string
	Description string
	Completed   bool
	Owner       string // user id
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries the fields a caller asked to change. A nil field was not
// sent and is left alone, so an explicit false still gets applied.
type TaskPatch struct {
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Description == nil && p.Completed == nil
}

// Apply returns a copy of t with the patch applied and UpdatedAt set to now.
func (p TaskPatch) Apply(t Task, now time.Time) Task {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = now
	return t
}
