package entity

import "time"

// Todo maps to the todos table. Rows are never removed, delete only flips IsDeleted.
type Todo struct {
	ID          uint       `gorm:"primaryKey"`
	Content     string     `gorm:"type:text;not null"`
	IsCompleted bool       `gorm:"not null;default:false;index:idx_todos_listing,priority:2"`
	IsDeleted   bool       `gorm:"not null;default:false;index:idx_todos_listing,priority:1"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_todos_listing,priority:3"`
	CompletedAt *time.Time
}

func (Todo) TableName() string {
	return "todos"
}

// SetCompleted applies the completion transition: completed_at is stamped when the todo
// goes from open to completed and cleared whenever it is written as not completed.
func (t *Todo) SetCompleted(completed bool, now time.Time) {
	wasCompleted := t.IsCompleted
	t.IsCompleted = completed

	switch {
	case completed && !wasCompleted:
		t.CompletedAt = &now
	case !completed:
		t.CompletedAt = nil
	}
}

// TodoStats holds row counts per state.
type TodoStats struct {
	Active    int64
	Completed int64
	Deleted   int64
}
