package repository

import (
	"context"
	"errors"

	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeddingRepository struct {
	db *gorm.DB
}

type WeddingRepositoryInterface interface {
	Create(ctx context.Context, wedding *model.Wedding) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Wedding, error)
	GetByPlanner(ctx context.Context, plannerID uuid.UUID) ([]model.Wedding, error)
	Update(ctx context.Context, wedding *model.Wedding) error
}

var _ WeddingRepositoryInterface = (*WeddingRepository)(nil)

func NewWeddingRepository(db *gorm.DB) *WeddingRepository {
	return &WeddingRepository{db: db}
}

func (r *WeddingRepository) Create(ctx context.Context, wedding *model.Wedding) error {
	return r.db.WithContext(ctx).Create(wedding).Error
}

func (r *WeddingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Wedding, error) {
	var wedding model.Wedding
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&wedding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wedding, nil
}

func (r *WeddingRepository) GetByPlanner(ctx context.Context, plannerID uuid.UUID) ([]model.Wedding, error) {
	var weddings []model.Wedding
	err := r.db.WithContext(ctx).Where("planner_id = ?", plannerID).Order("wedding_date").Find(&weddings).Error
	return weddings, err
}

func (r *WeddingRepository) Update(ctx context.Context, wedding *model.Wedding) error {
	result := r.db.WithContext(ctx).Save(wedding)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWeddingNotFound
	}
	return nil
}
