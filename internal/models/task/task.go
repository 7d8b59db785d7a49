package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      Status     `json:"status" db:"status"`
	IsDeleted   bool       `json:"isDeleted" db:"is_deleted"`
	OwnerID     uuid.UUID  `json:"-" db:"owner_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}

type Status string

const StatusOpen Status = "OPEN"
const StatusInProgress Status = "IN_PROGRESS"
const StatusBlocked Status = "BLOCKED"
const StatusDone Status = "DONE"

// AllStatuses возвращает статусы в порядке объявления
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusBlocked, StatusDone}
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}
