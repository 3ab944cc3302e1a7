package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/checklist"
	"github.com/ndsrf/wedding-sub002/internal/handler"
	"github.com/ndsrf/wedding-sub002/internal/middleware"
	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
)

func setupImportTest(userID uuid.UUID) (*gin.Engine, *MockWeddingRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})

	mockWeddings := new(MockWeddingRepository)
	importHandler := handler.NewImportHandler(checklist.NewService(nil), nil, mockWeddings)

	r.POST("/weddings/:id/checklist/import", importHandler.Import)

	return r, mockWeddings
}

func importWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Buffer {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetCellValue(sheet, cell, name))
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	assert.NoError(t, f.Write(&buf))
	return &buf
}

func multipartUpload(t *testing.T, workbook *bytes.Buffer) (*bytes.Buffer, string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "checklist.xlsx")
	assert.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

var importHeader = []string{"Section", "Task Title", "Description", "Assigned To", "Due Date", "Status", "Completed"}

func TestImport_ValidateMode(t *testing.T) {
	userID := uuid.New()
	router, mockWeddings := setupImportTest(userID)

	weddingID := uuid.New()
	wedding := &model.Wedding{
		ID:          weddingID,
		PlannerID:   userID,
		Name:        "Smith wedding",
		WeddingDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	mockWeddings.On("GetByID", mock.Anything, weddingID).Return(wedding, nil)

	workbook := importWorkbook(t, importHeader, [][]string{
		{"Venue", "Book venue", "", "COUPLE", "WEDDING_DATE-180", "PENDING", "no"},
		{"Venue", "Confirm menu", "", "OTHER", "WEDDING_DATE-30", "PENDING", "yes"},
	})
	body, contentType := multipartUpload(t, workbook)

	req, _ := http.NewRequest("POST", "/weddings/"+weddingID.String()+"/checklist/import?mode=validate", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var report checklist.ValidationReport
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	assert.Empty(t, report.Errors)
	assert.Len(t, report.Rows, 2)
	// Row 2 says completed but status PENDING; validation reconciles with a warning.
	assert.NotEmpty(t, report.Warnings)

	mockWeddings.AssertExpectations(t)
}

func TestImport_MissingColumns(t *testing.T) {
	userID := uuid.New()
	router, mockWeddings := setupImportTest(userID)

	weddingID := uuid.New()
	wedding := &model.Wedding{
		ID:          weddingID,
		PlannerID:   userID,
		WeddingDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	mockWeddings.On("GetByID", mock.Anything, weddingID).Return(wedding, nil)

	workbook := importWorkbook(t, []string{"Section", "Task Title"}, nil)
	body, contentType := multipartUpload(t, workbook)

	req, _ := http.NewRequest("POST", "/weddings/"+weddingID.String()+"/checklist/import?mode=validate", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "missing required columns")
}

func TestImport_UnknownMode(t *testing.T) {
	userID := uuid.New()
	router, mockWeddings := setupImportTest(userID)

	weddingID := uuid.New()
	wedding := &model.Wedding{
		ID:          weddingID,
		PlannerID:   userID,
		WeddingDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	mockWeddings.On("GetByID", mock.Anything, weddingID).Return(wedding, nil)

	workbook := importWorkbook(t, importHeader, nil)
	body, contentType := multipartUpload(t, workbook)

	req, _ := http.NewRequest("POST", "/weddings/"+weddingID.String()+"/checklist/import?mode=dryrun", body)
	req.Header.Set("Content-Type", contentType)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
