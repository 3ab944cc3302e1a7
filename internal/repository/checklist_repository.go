package repository

import (
	"context"
	"errors"

	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChecklistRepository struct {
	db *gorm.DB
}

// ChecklistRepositoryInterface is the persistence contract of the checklist
// import pipeline. Section and task point lookups match case-insensitively,
// which is what makes the import merge key (section name, title) work.
type ChecklistRepositoryInterface interface {
	GetSectionByID(ctx context.Context, id uuid.UUID) (*model.ChecklistSection, error)
	GetSectionByName(ctx context.Context, weddingID uuid.UUID, name string) (*model.ChecklistSection, error)
	GetSectionsByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.ChecklistSection, error)
	CreateSection(ctx context.Context, section *model.ChecklistSection) error
	DeleteSection(ctx context.Context, id uuid.UUID) error
	MaxSectionPosition(ctx context.Context, weddingID uuid.UUID) (int, error)

	GetTaskByID(ctx context.Context, id uuid.UUID) (*model.ChecklistTask, error)
	GetTaskByTitle(ctx context.Context, weddingID uuid.UUID, sectionID *uuid.UUID, title string) (*model.ChecklistTask, error)
	GetTasksByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.ChecklistTask, error)
	CreateTask(ctx context.Context, task *model.ChecklistTask) error
	UpdateTask(ctx context.Context, task *model.ChecklistTask) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	MaxTaskPosition(ctx context.Context, weddingID uuid.UUID) (int, error)

	// InTransaction runs fn against a transaction-scoped repository. All
	// writes issued through that repository commit or roll back together.
	InTransaction(ctx context.Context, fn func(ChecklistRepositoryInterface) error) error
}

var _ ChecklistRepositoryInterface = (*ChecklistRepository)(nil)

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) GetSectionByID(ctx context.Context, id uuid.UUID) (*model.ChecklistSection, error) {
	var section model.ChecklistSection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *ChecklistRepository) GetSectionByName(ctx context.Context, weddingID uuid.UUID, name string) (*model.ChecklistSection, error) {
	var section model.ChecklistSection
	err := r.db.WithContext(ctx).
		Where("wedding_id = ? AND LOWER(name) = LOWER(?)", weddingID, name).
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

func (r *ChecklistRepository) GetSectionsByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.ChecklistSection, error) {
	var sections []model.ChecklistSection
	err := r.db.WithContext(ctx).Where("wedding_id = ?", weddingID).Order("position").Find(&sections).Error
	return sections, err
}

func (r *ChecklistRepository) CreateSection(ctx context.Context, section *model.ChecklistSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

// DeleteSection orphans the section's tasks (they stay on the wedding with no
// section) and compacts the positions of the sections that followed it.
func (r *ChecklistRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section model.ChecklistSection
		if err := tx.Where("id = ?", id).First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		if err := tx.Model(&model.ChecklistTask{}).
			Where("section_id = ?", id).
			Update("section_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.ChecklistSection{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Model(&model.ChecklistSection{}).
			Where("wedding_id = ? AND position > ?", section.WeddingID, section.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

func (r *ChecklistRepository) MaxSectionPosition(ctx context.Context, weddingID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.ChecklistSection{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("wedding_id = ?", weddingID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

func (r *ChecklistRepository) GetTaskByID(ctx context.Context, id uuid.UUID) (*model.ChecklistTask, error) {
	var task model.ChecklistTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// GetTaskByTitle finds a task by the import merge key: section (nil means an
// orphaned task) plus case-insensitive title.
func (r *ChecklistRepository) GetTaskByTitle(ctx context.Context, weddingID uuid.UUID, sectionID *uuid.UUID, title string) (*model.ChecklistTask, error) {
	query := r.db.WithContext(ctx).
		Where("wedding_id = ? AND LOWER(title) = LOWER(?)", weddingID, title)
	if sectionID == nil {
		query = query.Where("section_id IS NULL")
	} else {
		query = query.Where("section_id = ?", *sectionID)
	}

	var task model.ChecklistTask
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *ChecklistRepository) GetTasksByWeddingID(ctx context.Context, weddingID uuid.UUID) ([]model.ChecklistTask, error) {
	var tasks []model.ChecklistTask
	err := r.db.WithContext(ctx).Where("wedding_id = ?", weddingID).Order("position").Find(&tasks).Error
	return tasks, err
}

func (r *ChecklistRepository) CreateTask(ctx context.Context, task *model.ChecklistTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *ChecklistRepository) UpdateTask(ctx context.Context, task *model.ChecklistTask) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *ChecklistRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ChecklistTask{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *ChecklistRepository) MaxTaskPosition(ctx context.Context, weddingID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.ChecklistTask{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("wedding_id = ?", weddingID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

func (r *ChecklistRepository) InTransaction(ctx context.Context, fn func(ChecklistRepositoryInterface) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ChecklistRepository{db: tx})
	})
}
