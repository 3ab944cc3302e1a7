package checklist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memoryStore is an in-memory ChecklistRepositoryInterface so the commit
// stage can be exercised without a database. failCreateTitle makes CreateTask
// fail for one title to test per-row error tolerance.
type memoryStore struct {
	sections []*model.ChecklistSection
	tasks    []*model.ChecklistTask

	failCreateTitle string
	txCalls         int
}

var _ repository.ChecklistRepositoryInterface = (*memoryStore)(nil)

func (m *memoryStore) GetSectionByID(_ context.Context, id uuid.UUID) (*model.ChecklistSection, error) {
	for _, s := range m.sections {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetSectionByName(_ context.Context, weddingID uuid.UUID, name string) (*model.ChecklistSection, error) {
	for _, s := range m.sections {
		if s.WeddingID == weddingID && strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetSectionsByWeddingID(_ context.Context, weddingID uuid.UUID) ([]model.ChecklistSection, error) {
	var out []model.ChecklistSection
	for _, s := range m.sections {
		if s.WeddingID == weddingID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memoryStore) CreateSection(_ context.Context, section *model.ChecklistSection) error {
	section.ID = uuid.New()
	m.sections = append(m.sections, section)
	return nil
}

func (m *memoryStore) DeleteSection(_ context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (m *memoryStore) MaxSectionPosition(_ context.Context, weddingID uuid.UUID) (int, error) {
	max := 0
	for _, s := range m.sections {
		if s.WeddingID == weddingID && s.Position > max {
			max = s.Position
		}
	}
	return max, nil
}

func (m *memoryStore) GetTaskByID(_ context.Context, id uuid.UUID) (*model.ChecklistTask, error) {
	for _, task := range m.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetTaskByTitle(_ context.Context, weddingID uuid.UUID, sectionID *uuid.UUID, title string) (*model.ChecklistTask, error) {
	for _, task := range m.tasks {
		if task.WeddingID != weddingID || !strings.EqualFold(task.Title, title) {
			continue
		}
		if sectionID == nil && task.SectionID == nil {
			return task, nil
		}
		if sectionID != nil && task.SectionID != nil && *sectionID == *task.SectionID {
			return task, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetTasksByWeddingID(_ context.Context, weddingID uuid.UUID) ([]model.ChecklistTask, error) {
	var out []model.ChecklistTask
	for _, task := range m.tasks {
		if task.WeddingID == weddingID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (m *memoryStore) CreateTask(_ context.Context, task *model.ChecklistTask) error {
	if m.failCreateTitle != "" && task.Title == m.failCreateTitle {
		return errors.New("simulated insert failure")
	}
	task.ID = uuid.New()
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *memoryStore) UpdateTask(_ context.Context, task *model.ChecklistTask) error {
	for i, existing := range m.tasks {
		if existing.ID == task.ID {
			m.tasks[i] = task
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (m *memoryStore) DeleteTask(_ context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (m *memoryStore) MaxTaskPosition(_ context.Context, weddingID uuid.UUID) (int, error) {
	max := 0
	for _, task := range m.tasks {
		if task.WeddingID == weddingID && task.Position > max {
			max = task.Position
		}
	}
	return max, nil
}

func (m *memoryStore) InTransaction(ctx context.Context, fn func(repository.ChecklistRepositoryInterface) error) error {
	m.txCalls++
	return fn(m)
}

func importBatch() []ImportRow {
	return []ImportRow{
		{Line: 1, Section: "Venue", Title: "Book hall", Description: "Call three venues", AssignedTo: model.AssigneePlanner, DueDate: "WEDDING_DATE-180", Status: model.StatusPending},
		{Line: 2, Section: "Venue", Title: "Confirm menu", AssignedTo: model.AssigneeCouple, DueDate: "WEDDING_DATE-60", Status: model.StatusPending},
		{Line: 3, Section: "Guests", Title: "Send invites", AssignedTo: model.AssigneeOther, DueDate: "2026-05-01", Status: model.StatusCompleted, Completed: true},
	}
}

func TestCommit_CreatesEverything(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	weddingID := uuid.New()

	result, err := service.Commit(context.Background(), weddingID, testWeddingDate, importBatch())
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TasksCreated)
	assert.Equal(t, 0, result.TasksUpdated)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, store.txCalls)

	// Two sections created with sequential positions in input order
	assert.Len(t, store.sections, 2)
	assert.Equal(t, "Venue", store.sections[0].Name)
	assert.Equal(t, 1, store.sections[0].Position)
	assert.Equal(t, "Guests", store.sections[1].Name)
	assert.Equal(t, 2, store.sections[1].Position)

	// Task positions seeded from the wedding-wide max, sequential per row
	assert.Equal(t, []int{1, 2, 3}, []int{store.tasks[0].Position, store.tasks[1].Position, store.tasks[2].Position})

	// Relative due date resolved against the wedding date
	assert.Equal(t, time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC), *store.tasks[0].DueDate)

	// Completed row got a completion timestamp
	assert.True(t, store.tasks[2].Completed)
	assert.NotNil(t, store.tasks[2].CompletedAt)
	assert.Equal(t, model.StatusCompleted, store.tasks[2].Status)
}

func TestCommit_IdempotentUnderSameBatch(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	weddingID := uuid.New()

	first, err := service.Commit(context.Background(), weddingID, testWeddingDate, importBatch())
	assert.NoError(t, err)
	assert.Equal(t, 3, first.TasksCreated)
	assert.Equal(t, 0, first.TasksUpdated)

	second, err := service.Commit(context.Background(), weddingID, testWeddingDate, importBatch())
	assert.NoError(t, err)
	assert.Equal(t, 0, second.TasksCreated)
	assert.Equal(t, 3, second.TasksUpdated)
	assert.True(t, second.Success)

	assert.Len(t, store.tasks, 3)
	assert.Len(t, store.sections, 2)
}

func TestCommit_MatchesTitleCaseInsensitively(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	weddingID := uuid.New()

	_, err := service.Commit(context.Background(), weddingID, testWeddingDate, importBatch())
	assert.NoError(t, err)

	recased := []ImportRow{
		{Line: 1, Section: "VENUE", Title: "BOOK HALL", Description: "updated", AssignedTo: model.AssigneeOther, DueDate: "WEDDING_DATE-150", Status: model.StatusInProgress},
	}
	result, err := service.Commit(context.Background(), weddingID, testWeddingDate, recased)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TasksCreated)
	assert.Equal(t, 1, result.TasksUpdated)

	// The stored title keeps its original casing; mutable fields change
	assert.Equal(t, "Book hall", store.tasks[0].Title)
	assert.Equal(t, "updated", store.tasks[0].Description)
	assert.Equal(t, model.StatusInProgress, store.tasks[0].Status)
}

func TestCommit_RenamedTitleCreatesNewTask(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	weddingID := uuid.New()

	_, err := service.Commit(context.Background(), weddingID, testWeddingDate, importBatch())
	assert.NoError(t, err)

	renamed := []ImportRow{
		{Line: 1, Section: "Venue", Title: "Book the hall", AssignedTo: model.AssigneePlanner, DueDate: "WEDDING_DATE-180", Status: model.StatusPending},
	}
	result, err := service.Commit(context.Background(), weddingID, testWeddingDate, renamed)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TasksCreated)
	assert.Equal(t, 0, result.TasksUpdated)
	assert.Len(t, store.tasks, 4)
}

func TestCommit_RowFailureDoesNotAbortBatch(t *testing.T) {
	store := &memoryStore{failCreateTitle: "Confirm menu"}
	service := NewService(store)
	weddingID := uuid.New()

	result, err := service.Commit(context.Background(), weddingID, testWeddingDate, importBatch())
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 2, result.TasksCreated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Len(t, store.tasks, 2)
}

func TestPreview(t *testing.T) {
	store := &memoryStore{}
	service := NewService(store)
	weddingID := uuid.New()

	// Seed one existing section with one task
	section := &model.ChecklistSection{WeddingID: weddingID, Name: "Venue", Position: 1}
	assert.NoError(t, store.CreateSection(context.Background(), section))
	task := &model.ChecklistTask{
		WeddingID: weddingID, SectionID: &section.ID, Title: "Book hall",
		AssignedTo: model.AssigneePlanner, Status: model.StatusPending, Position: 1,
	}
	assert.NoError(t, store.CreateTask(context.Background(), task))

	report := ValidationReport{
		Rows:     importBatch(),
		Warnings: []RowIssue{{Row: 9, Message: "test warning"}},
	}
	preview, err := service.Preview(context.Background(), weddingID, report)
	assert.NoError(t, err)

	assert.Equal(t, 1, preview.UpdatedTasks)
	assert.Equal(t, 2, preview.NewTasks)
	assert.Equal(t, []string{"Guests", "Venue"}, preview.Sections)
	assert.Len(t, preview.Rows, 3)
	assert.Len(t, preview.Warnings, 1)

	// Preview never writes
	assert.Len(t, store.tasks, 1)
	assert.Len(t, store.sections, 1)
	assert.Equal(t, 0, store.txCalls)
}
