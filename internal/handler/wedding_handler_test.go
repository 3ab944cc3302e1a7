package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/handler"
	"github.com/ndsrf/wedding-sub002/internal/middleware"
	"github.com/ndsrf/wedding-sub002/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWeddingRepository struct {
	mock.Mock
}

func (m *MockWeddingRepository) Create(ctx context.Context, wedding *model.Wedding) error {
	args := m.Called(ctx, wedding)
	return args.Error(0)
}

func (m *MockWeddingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Wedding, error) {
	args := m.Called(ctx, id)
	wedding := args.Get(0)
	if wedding == nil {
		return nil, args.Error(1)
	}
	return wedding.(*model.Wedding), args.Error(1)
}

func (m *MockWeddingRepository) GetByPlanner(ctx context.Context, plannerID uuid.UUID) ([]model.Wedding, error) {
	args := m.Called(ctx, plannerID)
	return args.Get(0).([]model.Wedding), args.Error(1)
}

func (m *MockWeddingRepository) Update(ctx context.Context, wedding *model.Wedding) error {
	args := m.Called(ctx, wedding)
	return args.Error(0)
}

func setupWeddingTest(userID uuid.UUID) (*gin.Engine, *MockWeddingRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})

	mockRepo := new(MockWeddingRepository)
	weddingHandler := handler.NewWeddingHandler(mockRepo)

	r.POST("/weddings", weddingHandler.Create)
	r.GET("/weddings/:id", weddingHandler.GetByID)

	return r, mockRepo
}

func TestWeddingCreate_Success(t *testing.T) {
	userID := uuid.New()
	router, mockRepo := setupWeddingTest(userID)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Wedding")).Return(nil)

	reqBody := handler.CreateWeddingRequest{
		Name:        "Smith wedding",
		WeddingDate: "2026-06-15",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/weddings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.WeddingResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Smith wedding", response.Name)
	assert.Equal(t, "2026-06-15", response.WeddingDate)

	mockRepo.AssertExpectations(t)
}

func TestWeddingCreate_BadDate(t *testing.T) {
	router, _ := setupWeddingTest(uuid.New())

	reqBody := handler.CreateWeddingRequest{
		Name:        "Smith wedding",
		WeddingDate: "15/06/2026",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/weddings", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWeddingGetByID_NotFound(t *testing.T) {
	router, mockRepo := setupWeddingTest(uuid.New())

	weddingID := uuid.New()
	mockRepo.On("GetByID", mock.Anything, weddingID).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/weddings/"+weddingID.String(), nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestWeddingGetByID_ForeignWedding(t *testing.T) {
	router, mockRepo := setupWeddingTest(uuid.New())

	weddingID := uuid.New()
	foreign := &model.Wedding{
		ID:          weddingID,
		PlannerID:   uuid.New(),
		Name:        "Someone else's wedding",
		WeddingDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	mockRepo.On("GetByID", mock.Anything, weddingID).Return(foreign, nil)

	req, _ := http.NewRequest("GET", "/weddings/"+weddingID.String(), nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockRepo.AssertExpectations(t)
}
