package domain

import "time"

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000

	DefaultPriority = "medium"
)

type Task struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Completed   bool       `db:"completed"`
	DueDate     *time.Time `db:"due_date"`
	Priority    string     `db:"priority"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// TaskUpdate carries a partial update: nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	Priority    *string
}

// TaskFilter narrows a listing. Completed == nil means no completion filter.
type TaskFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
