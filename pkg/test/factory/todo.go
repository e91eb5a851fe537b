package factory

import (
	fab "github.com/Goldziher/fabricator"

	"todoapi/internal/core/domain"
)

// NewTodo builds a T with random field values. customData overrides fields
// by struct field name; later maps win over earlier ones.
func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(merge(customData...))
}

// NewCreateTodo returns a create input with a random non-empty body.
func NewCreateTodo(customData ...map[string]any) domain.CreateTodo {
	input := NewTodo[domain.CreateTodo](customData...)

	if input.Body == "" {
		input.Body = "buy milk"
	}

	return input
}

// NewStoredTodo returns a todo ready to persist, timestamps set to now.
func NewStoredTodo(customData ...map[string]any) domain.Todo {
	now := domain.Now()

	defaults := map[string]any{
		"ID":        int64(0),
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	todo := NewTodo[domain.Todo](append([]map[string]any{defaults}, customData...)...)

	if todo.Body == "" {
		todo.Body = "buy milk"
	}

	return todo
}

// fabricator only reads the first override map.
func merge(maps ...map[string]any) map[string]any {
	merged := make(map[string]any)

	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}

	return merged
}
