package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/reldate"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChecklistHandler struct {
	checklistRepo repository.ChecklistRepositoryInterface
	weddingRepo   repository.WeddingRepositoryInterface
}

func NewChecklistHandler(checklistRepo repository.ChecklistRepositoryInterface, weddingRepo repository.WeddingRepositoryInterface) *ChecklistHandler {
	return &ChecklistHandler{
		checklistRepo: checklistRepo,
		weddingRepo:   weddingRepo,
	}
}

type CreateSectionRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateTaskRequest struct {
	SectionID   string `json:"section_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to" binding:"required"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
	Completed   *bool   `json:"completed"`
}

type TaskResponse struct {
	ID              string  `json:"id"`
	SectionID       *string `json:"section_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	AssignedTo      string  `json:"assigned_to"`
	DueDate         *string `json:"due_date"`
	DueDateRelative *string `json:"due_date_relative"`
	Status          string  `json:"status"`
	Completed       bool    `json:"completed"`
	CompletedAt     *string `json:"completed_at"`
	Position        int     `json:"position"`
}

type SectionResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Position int            `json:"position"`
	Tasks    []TaskResponse `json:"tasks"`
}

type ChecklistResponse struct {
	Sections      []SectionResponse `json:"sections"`
	OrphanedTasks []TaskResponse    `json:"orphaned_tasks"`
}

func taskResponse(t *model.ChecklistTask, weddingDate time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		Status:      t.Status,
		Completed:   t.Completed,
		Position:    t.Position,
	}
	if t.SectionID != nil {
		id := t.SectionID.String()
		resp.SectionID = &id
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
		if rel, err := reldate.ToRelative(*t.DueDate, weddingDate); err == nil {
			s := rel.String()
			resp.DueDateRelative = &s
		}
	}
	if t.CompletedAt != nil {
		at := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &at
	}
	return resp
}

// GetChecklist returns the wedding's sections in order, each with its
// tasks, plus tasks whose section has been deleted.
func (h *ChecklistHandler) GetChecklist(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	weddingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wedding := loadOwnedWedding(c, h.weddingRepo, weddingID, userID)
	if wedding == nil {
		return
	}

	sections, err := h.checklistRepo.GetSectionsByWeddingID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checklist sections"})
		return
	}

	tasks, err := h.checklistRepo.GetTasksByWeddingID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checklist tasks"})
		return
	}

	bySection := make(map[uuid.UUID][]TaskResponse)
	var orphaned []TaskResponse
	for i := range tasks {
		tr := taskResponse(&tasks[i], wedding.WeddingDate)
		if tasks[i].SectionID == nil {
			orphaned = append(orphaned, tr)
			continue
		}
		bySection[*tasks[i].SectionID] = append(bySection[*tasks[i].SectionID], tr)
	}

	resp := ChecklistResponse{
		Sections:      make([]SectionResponse, 0, len(sections)),
		OrphanedTasks: orphaned,
	}
	for i := range sections {
		sectionTasks := bySection[sections[i].ID]
		if sectionTasks == nil {
			sectionTasks = []TaskResponse{}
		}
		resp.Sections = append(resp.Sections, SectionResponse{
			ID:       sections[i].ID.String(),
			Name:     sections[i].Name,
			Position: sections[i].Position,
			Tasks:    sectionTasks,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChecklistHandler) CreateSection(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	weddingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if loadOwnedWedding(c, h.weddingRepo, weddingID, userID) == nil {
		return
	}

	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	maxPosition, err := h.checklistRepo.MaxSectionPosition(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine section position"})
		return
	}

	section := &model.ChecklistSection{
		WeddingID: weddingID,
		Name:      req.Name,
		Position:  maxPosition + 1,
	}

	if err := h.checklistRepo.CreateSection(c.Request.Context(), section); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}

	c.JSON(http.StatusCreated, SectionResponse{
		ID:       section.ID.String(),
		Name:     section.Name,
		Position: section.Position,
		Tasks:    []TaskResponse{},
	})
}

func (h *ChecklistHandler) DeleteSection(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	section, err := h.checklistRepo.GetSectionByID(c.Request.Context(), sectionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load section"})
		return
	}
	if section == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}

	if loadOwnedWedding(c, h.weddingRepo, section.WeddingID, userID) == nil {
		return
	}

	// Tasks in the section survive as orphans; later sections shift up.
	if err := h.checklistRepo.DeleteSection(c.Request.Context(), sectionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}

func (h *ChecklistHandler) CreateTask(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	weddingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wedding := loadOwnedWedding(c, h.weddingRepo, weddingID, userID)
	if wedding == nil {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.AssignedTo = strings.ToUpper(req.AssignedTo)
	if !model.ValidAssignee(req.AssignedTo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "AssignedTo must be WEDDING_PLANNER, COUPLE or OTHER"})
		return
	}

	status := model.StatusPending
	if req.Status != "" {
		status = strings.ToUpper(req.Status)
		if !model.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be PENDING, IN_PROGRESS or COMPLETED"})
			return
		}
	}

	var sectionID *uuid.UUID
	if req.SectionID != "" {
		id, err := uuid.Parse(req.SectionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section ID format"})
			return
		}
		section, err := h.checklistRepo.GetSectionByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load section"})
			return
		}
		if section == nil || section.WeddingID != weddingID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
			return
		}
		sectionID = &id
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate, wedding.WeddingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be YYYY-MM-DD or WEDDING_DATE±N"})
			return
		}
		dueDate = &due
	}

	maxPosition, err := h.checklistRepo.MaxTaskPosition(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine task position"})
		return
	}

	task := &model.ChecklistTask{
		WeddingID:   weddingID,
		SectionID:   sectionID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     dueDate,
		Status:      status,
		Position:    maxPosition + 1,
	}
	if status == model.StatusCompleted {
		task.SetCompleted(true, time.Now())
	}

	if err := h.checklistRepo.CreateTask(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task, wedding.WeddingDate))
}

func (h *ChecklistHandler) loadOwnedTask(c *gin.Context) (*model.ChecklistTask, *model.Wedding) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return nil, nil
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, nil
	}

	task, err := h.checklistRepo.GetTaskByID(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load task"})
		return nil, nil
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, nil
	}

	wedding := loadOwnedWedding(c, h.weddingRepo, task.WeddingID, userID)
	if wedding == nil {
		return nil, nil
	}

	return task, wedding
}

func (h *ChecklistHandler) UpdateTask(c *gin.Context) {
	task, wedding := h.loadOwnedTask(c)
	if task == nil {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedTo != nil {
		assignee := strings.ToUpper(*req.AssignedTo)
		if !model.ValidAssignee(assignee) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "AssignedTo must be WEDDING_PLANNER, COUPLE or OTHER"})
			return
		}
		task.AssignedTo = assignee
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			due, err := parseDueDate(*req.DueDate, wedding.WeddingDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be YYYY-MM-DD or WEDDING_DATE±N"})
				return
			}
			task.DueDate = &due
		}
	}

	// Status and completed both drive the same three-way state; SetCompleted
	// keeps completed, status and completed_at consistent.
	if req.Status != nil {
		status := strings.ToUpper(*req.Status)
		if !model.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be PENDING, IN_PROGRESS or COMPLETED"})
			return
		}
		if status == model.StatusCompleted {
			task.SetCompleted(true, time.Now())
		} else {
			task.SetCompleted(false, time.Now())
			task.Status = status
		}
	}
	if req.Completed != nil {
		task.SetCompleted(*req.Completed, time.Now())
	}

	if err := h.checklistRepo.UpdateTask(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(task, wedding.WeddingDate))
}

func (h *ChecklistHandler) DeleteTask(c *gin.Context) {
	task, _ := h.loadOwnedTask(c)
	if task == nil {
		return
	}

	if err := h.checklistRepo.DeleteTask(c.Request.Context(), task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func parseDueDate(raw string, weddingDate time.Time) (time.Time, error) {
	if r, ok := reldate.Parse(raw); ok {
		return reldate.ToAbsolute(r, weddingDate)
	}
	return time.Parse("2006-01-02", strings.TrimSpace(raw))
}
