package entity

import (
	"time"

	"github.com/oksasatya/todo-api/pkg/optional"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Priority    int       `db:"priority"`
	IsCompleted bool      `db:"is_completed"`
	OwnerID     int64     `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (t Todo) EntityID() int64 { return t.ID }

func (t Todo) Fields() map[string]any {
	return map[string]any{
		"title":        t.Title,
		"description":  t.Description,
		"priority":     t.Priority,
		"is_completed": t.IsCompleted,
		"owner_id":     t.OwnerID,
	}
}

// ValidPriority reports whether p lies in [MinPriority, MaxPriority].
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

type TodoPatch struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	Priority    optional.Value[int]
	IsCompleted optional.Value[bool]
}

func (p TodoPatch) Columns() map[string]any {
	cols := map[string]any{}
	setValue(cols, "title", p.Title)
	setValue(cols, "description", p.Description)
	setValue(cols, "priority", p.Priority)
	setValue(cols, "is_completed", p.IsCompleted)
	return cols
}

func (p TodoPatch) Apply(t *Todo) {
	if v, ok := p.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := p.Priority.Get(); ok {
		t.Priority = v
	}
	if v, ok := p.IsCompleted.Get(); ok {
		t.IsCompleted = v
	}
}
