package handler

import (
	"net/http"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

type WeddingHandler struct {
	weddingRepo repository.WeddingRepositoryInterface
}

func NewWeddingHandler(weddingRepo repository.WeddingRepositoryInterface) *WeddingHandler {
	return &WeddingHandler{weddingRepo: weddingRepo}
}

type CreateWeddingRequest struct {
	Name        string `json:"name" binding:"required"`
	WeddingDate string `json:"wedding_date" binding:"required"`
}

type UpdateWeddingRequest struct {
	Name        string `json:"name"`
	WeddingDate string `json:"wedding_date"`
}

type WeddingResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	WeddingDate   string  `json:"wedding_date"`
	CoupleTableID *string `json:"couple_table_id"`
}

func weddingResponse(w *model.Wedding) WeddingResponse {
	resp := WeddingResponse{
		ID:          w.ID.String(),
		Name:        w.Name,
		WeddingDate: w.WeddingDate.Format("2006-01-02"),
	}
	if w.CoupleTableID != nil {
		id := w.CoupleTableID.String()
		resp.CoupleTableID = &id
	}
	return resp
}

func (h *WeddingHandler) Create(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req CreateWeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	weddingDate, err := time.Parse("2006-01-02", req.WeddingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wedding date must be in YYYY-MM-DD format"})
		return
	}

	wedding := &model.Wedding{
		PlannerID:   userID,
		Name:        req.Name,
		WeddingDate: weddingDate,
	}

	if err := h.weddingRepo.Create(c.Request.Context(), wedding); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wedding"})
		return
	}

	c.JSON(http.StatusCreated, weddingResponse(wedding))
}

func (h *WeddingHandler) GetAll(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	weddings, err := h.weddingRepo.GetByPlanner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weddings"})
		return
	}

	resp := make([]WeddingResponse, 0, len(weddings))
	for i := range weddings {
		resp = append(resp, weddingResponse(&weddings[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *WeddingHandler) GetByID(c *gin.Context) {
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

	c.JSON(http.StatusOK, weddingResponse(wedding))
}

func (h *WeddingHandler) Update(c *gin.Context) {
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

	var req UpdateWeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		wedding.Name = req.Name
	}
	if req.WeddingDate != "" {
		weddingDate, err := time.Parse("2006-01-02", req.WeddingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Wedding date must be in YYYY-MM-DD format"})
			return
		}
		wedding.WeddingDate = weddingDate
	}

	if err := h.weddingRepo.Update(c.Request.Context(), wedding); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wedding"})
		return
	}

	c.JSON(http.StatusOK, weddingResponse(wedding))
}
