package repository

import (
	"context"
	"errors"

	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FamilyRepository struct {
	db *gorm.DB
}

type FamilyRepositoryInterface interface {
	Create(ctx context.Context, family *model.Family) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Family, error)
	GetByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.Family, error)
	CreateMember(ctx context.Context, member *model.FamilyMember) error
	GetMemberByID(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error)
	GetMembersByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.FamilyMember, error)
	GetAttendingMembers(ctx context.Context, weddingID uuid.UUID) ([]model.FamilyMember, error)
	UpdateMember(ctx context.Context, member *model.FamilyMember) error
}

var _ FamilyRepositoryInterface = (*FamilyRepository)(nil)

func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) Create(ctx context.Context, family *model.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *FamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Family, error) {
	var family model.Family
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &family, nil
}

func (r *FamilyRepository) GetByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.Family, error) {
	var families []model.Family
	err := r.db.WithContext(ctx).Where("wedding_id = ?", weddingID).Order("name").Find(&families).Error
	return families, err
}

func (r *FamilyRepository) CreateMember(ctx context.Context, member *model.FamilyMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *FamilyRepository) GetMemberByID(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error) {
	var member model.FamilyMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *FamilyRepository) GetMembersByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.FamilyMember, error) {
	var members []model.FamilyMember
	err := r.db.WithContext(ctx).Where("wedding_id = ?", weddingID).Order("name").Find(&members).Error
	return members, err
}

// GetAttendingMembers returns the members whose attendance is confirmed,
// i.e. the seatable guest set for the seating engine.
func (r *FamilyRepository) GetAttendingMembers(ctx context.Context, weddingID uuid.UUID) ([]model.FamilyMember, error) {
	var members []model.FamilyMember
	err := r.db.WithContext(ctx).
		Where("wedding_id = ? AND attending = ?", weddingID, true).
		Order("family_id, seating_group, name").
		Find(&members).Error
	return members, err
}

func (r *FamilyRepository) UpdateMember(ctx context.Context, member *model.FamilyMember) error {
	result := r.db.WithContext(ctx).Save(member)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
