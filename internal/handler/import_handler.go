package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ndsrf/wedding-sub002/internal/checklist"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

// Import modes. Validate only reports problems, preview adds a dry-run
// merge summary, commit writes the batch.
const (
	ImportModeValidate = "validate"
	ImportModePreview  = "preview"
	ImportModeCommit   = "commit"
)

type ImportHandler struct {
	service       *checklist.Service
	checklistRepo repository.ChecklistRepositoryInterface
	weddingRepo   repository.WeddingRepositoryInterface
}

func NewImportHandler(service *checklist.Service, checklistRepo repository.ChecklistRepositoryInterface, weddingRepo repository.WeddingRepositoryInterface) *ImportHandler {
	return &ImportHandler{
		service:       service,
		checklistRepo: checklistRepo,
		weddingRepo:   weddingRepo,
	}
}

func (h *ImportHandler) Import(c *gin.Context) {
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

	mode := c.Query("mode")
	if mode == "" {
		mode = c.DefaultPostForm("mode", ImportModeCommit)
	}
	if mode != ImportModeValidate && mode != ImportModePreview && mode != ImportModeCommit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be validate, preview or commit"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	rows, err := checklist.ParseWorkbook(file)
	if err != nil {
		switch {
		case errors.Is(err, checklist.ErrEmptySheet):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet has no data rows"})
		case errors.Is(err, checklist.ErrMissingColumns):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a readable xlsx workbook"})
		}
		return
	}

	report := checklist.Validate(rows, wedding.WeddingDate)

	switch mode {
	case ImportModeValidate:
		c.JSON(http.StatusOK, report)

	case ImportModePreview:
		preview, err := h.service.Preview(c.Request.Context(), weddingID, report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build import preview"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"errors":  report.Errors,
			"preview": preview,
		})

	case ImportModeCommit:
		if !report.OK() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Batch has validation errors",
				"report": report,
			})
			return
		}
		result, err := h.service.Commit(c.Request.Context(), weddingID, wedding.WeddingDate, report.Rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
			return
		}
		result.Warnings = report.Warnings
		c.JSON(http.StatusOK, result)
	}
}

func (h *ImportHandler) Export(c *gin.Context) {
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

	filename := fmt.Sprintf("checklist-%s.xlsx", wedding.WeddingDate.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := checklist.WriteWorkbook(c.Writer, wedding.WeddingDate, sections, tasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
		return
	}
}
