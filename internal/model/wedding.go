package model

import (
	"time"

	"github.com/google/uuid"
)

type Wedding struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PlannerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	WeddingDate time.Time `gorm:"type:date;not null"`

	// CoupleTableID is where the hosting couple sits. The couple is not stored
	// as family members, so its seat is tracked here instead of the usual
	// member-table relation.
	CoupleTableID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Planner User `gorm:"foreignKey:PlannerID"`
}

// CoupleSeats is the number of seats the hosting couple occupies.
const CoupleSeats = 2
