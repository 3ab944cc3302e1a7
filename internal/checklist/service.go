package checklist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/logging"
	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/google/uuid"
)

// Service runs the preview and commit stages of the import pipeline.
type Service struct {
	repo repository.ChecklistRepositoryInterface
	now  func() time.Time
}

func NewService(repo repository.ChecklistRepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Preview computes, without writing anything, how many validated rows would
// create a new task and how many would update an existing one under the
// (section name, title) merge key.
func (s *Service) Preview(ctx context.Context, weddingID uuid.UUID, report ValidationReport) (*ImportPreview, error) {
	sections, err := s.repo.GetSectionsByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.GetTasksByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, err
	}

	sectionIDs := make(map[string]uuid.UUID, len(sections))
	for _, section := range sections {
		sectionIDs[strings.ToLower(section.Name)] = section.ID
	}

	// Existing tasks keyed the same way the commit stage matches them:
	// section (orphans included under their own bucket) plus lowercased title.
	existing := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		existing[taskKey(task.SectionID, task.Title)] = true
	}

	preview := &ImportPreview{
		Rows:     report.Rows,
		Warnings: report.Warnings,
	}

	sectionNames := make(map[string]string)
	for _, row := range report.Rows {
		sectionNames[strings.ToLower(row.Section)] = row.Section

		var sectionID *uuid.UUID
		if id, ok := sectionIDs[strings.ToLower(row.Section)]; ok {
			sectionID = &id
		}
		if sectionID != nil && existing[taskKey(sectionID, row.Title)] {
			preview.UpdatedTasks++
		} else {
			preview.NewTasks++
		}
	}

	for _, name := range sectionNames {
		preview.Sections = append(preview.Sections, name)
	}
	sort.Strings(preview.Sections)

	return preview, nil
}

// Commit merges validated rows into the wedding's checklist inside one
// transaction. Sections are created on first reference; tasks are matched by
// (section, lowercased title) and either updated or created. Position
// counters for new sections and tasks are seeded once at transaction start
// and incremented in memory, so a batch gets sequential positions in input
// order. A failure on one row is recorded and the rest of the batch
// continues; only a failure of the transaction itself aborts the import.
func (s *Service) Commit(ctx context.Context, weddingID uuid.UUID, weddingDate time.Time, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{}

	err := s.repo.InTransaction(ctx, func(store repository.ChecklistRepositoryInterface) error {
		sectionPos, err := store.MaxSectionPosition(ctx, weddingID)
		if err != nil {
			return err
		}
		taskPos, err := store.MaxTaskPosition(ctx, weddingID)
		if err != nil {
			return err
		}

		// Sections resolved or created earlier in this batch.
		sectionCache := make(map[string]*model.ChecklistSection)

		for _, row := range rows {
			if err := s.commitRow(ctx, store, weddingID, weddingDate, row, sectionCache, &sectionPos, &taskPos, result); err != nil {
				result.Errors = append(result.Errors, RowIssue{
					Row:     row.Line,
					Message: err.Error(),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Success = len(result.Errors) == 0
	logging.SLog.Infow("checklist import committed",
		"wedding_id", weddingID,
		"created", result.TasksCreated,
		"updated", result.TasksUpdated,
		"row_errors", len(result.Errors),
	)
	return result, nil
}

func (s *Service) commitRow(
	ctx context.Context,
	store repository.ChecklistRepositoryInterface,
	weddingID uuid.UUID,
	weddingDate time.Time,
	row ImportRow,
	sectionCache map[string]*model.ChecklistSection,
	sectionPos *int,
	taskPos *int,
	result *ImportResult,
) error {
	section, err := s.resolveSection(ctx, store, weddingID, row.Section, sectionCache, sectionPos)
	if err != nil {
		return fmt.Errorf("section %q: %w", row.Section, err)
	}

	due, err := resolveDueDate(row.DueDate, weddingDate)
	if err != nil {
		return fmt.Errorf("due date %q: %w", row.DueDate, err)
	}

	task, err := store.GetTaskByTitle(ctx, weddingID, &section.ID, row.Title)
	if err != nil {
		return err
	}

	if task != nil {
		task.Description = row.Description
		task.AssignedTo = row.AssignedTo
		task.DueDate = &due
		task.Status = row.Status
		task.SetCompleted(row.Completed, s.now())
		if err := store.UpdateTask(ctx, task); err != nil {
			return err
		}
		result.TasksUpdated++
		return nil
	}

	*taskPos++
	task = &model.ChecklistTask{
		WeddingID:   weddingID,
		SectionID:   &section.ID,
		Title:       row.Title,
		Description: row.Description,
		AssignedTo:  row.AssignedTo,
		DueDate:     &due,
		Status:      row.Status,
		Position:    *taskPos,
	}
	task.SetCompleted(row.Completed, s.now())
	if err := store.CreateTask(ctx, task); err != nil {
		return err
	}
	result.TasksCreated++
	return nil
}

func (s *Service) resolveSection(
	ctx context.Context,
	store repository.ChecklistRepositoryInterface,
	weddingID uuid.UUID,
	name string,
	cache map[string]*model.ChecklistSection,
	sectionPos *int,
) (*model.ChecklistSection, error) {
	key := strings.ToLower(name)
	if section, ok := cache[key]; ok {
		return section, nil
	}

	section, err := store.GetSectionByName(ctx, weddingID, name)
	if err != nil {
		return nil, err
	}
	if section == nil {
		*sectionPos++
		section = &model.ChecklistSection{
			WeddingID: weddingID,
			Name:      name,
			Position:  *sectionPos,
		}
		if err := store.CreateSection(ctx, section); err != nil {
			return nil, err
		}
	}

	cache[key] = section
	return section, nil
}

func taskKey(sectionID *uuid.UUID, title string) string {
	prefix := "orphan"
	if sectionID != nil {
		prefix = sectionID.String()
	}
	return prefix + "\x00" + strings.ToLower(title)
}
