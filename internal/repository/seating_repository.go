package repository

import (
	"context"

	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatUpdate sets or clears one family member's table.
type SeatUpdate struct {
	MemberID uuid.UUID
	TableID  *uuid.UUID
}

// CoupleUpdate sets or clears the couple's shared table reference.
type CoupleUpdate struct {
	TableID *uuid.UUID
}

type SeatingRepository struct {
	db *gorm.DB
}

type SeatingRepositoryInterface interface {
	// SaveAssignments applies every seat update and the optional couple
	// update in a single transaction. A partial seating write would break
	// table capacity invariants, so any failure rolls back the whole batch.
	SaveAssignments(ctx context.Context, weddingID uuid.UUID, seats []SeatUpdate, couple *CoupleUpdate) error
}

var _ SeatingRepositoryInterface = (*SeatingRepository)(nil)

func NewSeatingRepository(db *gorm.DB) *SeatingRepository {
	return &SeatingRepository{db: db}
}

func (r *SeatingRepository) SaveAssignments(ctx context.Context, weddingID uuid.UUID, seats []SeatUpdate, couple *CoupleUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, seat := range seats {
			result := tx.Model(&model.FamilyMember{}).
				Where("id = ? AND wedding_id = ?", seat.MemberID, weddingID).
				Update("table_id", seat.TableID)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrMemberNotFound
			}
		}

		if couple != nil {
			result := tx.Model(&model.Wedding{}).
				Where("id = ?", weddingID).
				Update("couple_table_id", couple.TableID)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrWeddingNotFound
			}
		}

		return nil
	})
}
