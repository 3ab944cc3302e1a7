package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignee values for checklist tasks
const (
	AssigneePlanner = "WEDDING_PLANNER"
	AssigneeCouple  = "COUPLE"
	AssigneeOther   = "OTHER"
)

// Task status values
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

type ChecklistSection struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`

	Wedding Wedding `gorm:"foreignKey:WeddingID"`
}

// ChecklistTask belongs to a section, or directly to the wedding when
// SectionID is nil (an orphaned task).
type ChecklistTask struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WeddingID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SectionID   *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"not null"`
	Description string
	AssignedTo  string `gorm:"not null;check:assigned_to IN ('WEDDING_PLANNER', 'COUPLE', 'OTHER')"`
	DueDate     *time.Time
	Status      string `gorm:"not null;check:status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED')"`
	Completed   bool   `gorm:"not null;default:false"`
	CompletedAt *time.Time
	Position    int `gorm:"not null"`

	Wedding Wedding           `gorm:"foreignKey:WeddingID"`
	Section *ChecklistSection `gorm:"foreignKey:SectionID"`
}

// SetCompleted keeps Completed, Status and CompletedAt consistent:
// a task is completed exactly when status is COMPLETED and completed_at is set.
func (t *ChecklistTask) SetCompleted(completed bool, at time.Time) {
	t.Completed = completed
	if completed {
		t.Status = StatusCompleted
		if t.CompletedAt == nil {
			t.CompletedAt = &at
		}
	} else {
		if t.Status == StatusCompleted {
			t.Status = StatusPending
		}
		t.CompletedAt = nil
	}
}

// ValidAssignee reports whether s is one of the assignee enum values.
func ValidAssignee(s string) bool {
	return s == AssigneePlanner || s == AssigneeCouple || s == AssigneeOther
}

// ValidStatus reports whether s is one of the task status enum values.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}
