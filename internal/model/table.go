package model

import (
	"github.com/google/uuid"
)

type Table struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Number    int       `gorm:"not null"`
	Capacity  int       `gorm:"not null;check:capacity > 0"`

	Wedding Wedding `gorm:"foreignKey:WeddingID"`
}
