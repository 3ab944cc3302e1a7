package repository

import (
	"context"
	"errors"

	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableRepository struct {
	db *gorm.DB
}

type TableRepositoryInterface interface {
	Create(ctx context.Context, table *model.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error)
	GetByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.Table, error)
	Update(ctx context.Context, table *model.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ TableRepositoryInterface = (*TableRepository)(nil)

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(ctx context.Context, table *model.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *TableRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	var table model.Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

func (r *TableRepository) GetByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.Table, error) {
	var tables []model.Table
	err := r.db.WithContext(ctx).Where("wedding_id = ?", weddingID).Order("number").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) Update(ctx context.Context, table *model.Table) error {
	result := r.db.WithContext(ctx).Save(table)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}

// Delete removes a table and unseats everyone assigned to it, including the
// couple when their shared table reference points at it.
func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.FamilyMember{}).
			Where("table_id = ?", id).
			Update("table_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Wedding{}).
			Where("couple_table_id = ?", id).
			Update("couple_table_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Table{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTableNotFound
		}
		return nil
	})
}
