package model

import (
	"time"

	"github.com/google/uuid"
)

type Family struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Wedding Wedding `gorm:"foreignKey:WeddingID"`
}

type FamilyMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	WeddingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Attending bool      `gorm:"not null;default:false"`

	// SeatingGroup splits a family into sub-groups that should sit together.
	// Empty means the family's default group.
	SeatingGroup string

	TableID *uuid.UUID `gorm:"type:uuid"`

	Family Family `gorm:"foreignKey:FamilyID"`
	Table  *Table `gorm:"foreignKey:TableID"`
}
