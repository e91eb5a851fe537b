package domain

import (
	"time"
)

type Todo struct {
	ID        int64
	Body      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTodo is the input of a create call. A nil Completed means false.
type CreateTodo struct {
	Body      string `json:"body" validate:"required"`
	Completed *bool  `json:"completed"`
}

// UpdateTodo carries a partial update. Nil fields keep the stored value.
type UpdateTodo struct {
	Body      *string `json:"body" validate:"omitempty,min=1"`
	Completed *bool   `json:"completed"`
}

// NewTodo builds the row that a create call persists. ID is left for the store.
func NewTodo(input CreateTodo, now time.Time) Todo {
	todo := Todo{
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Completed != nil {
		todo.Completed = *input.Completed
	}

	return todo
}

// Changes returns the column values an update statement must set.
func (u UpdateTodo) Changes(now time.Time) map[string]interface{} {
	changes := map[string]interface{}{
		"updated_at": now,
	}

	if u.Body != nil {
		changes["body"] = *u.Body
	}

	if u.Completed != nil {
		changes["completed"] = *u.Completed
	}

	return changes
}

func (u UpdateTodo) IsEmpty() bool {
	return u.Body == nil && u.Completed == nil
}

func (t *Todo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"body":       t.Body,
		"completed":  t.Completed,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

// Now is the clock used for todo timestamps. Values are UTC with microsecond
// precision so every supported store round-trips them unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
