package handler

import (
	"net/http"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	tableRepo   repository.TableRepositoryInterface
	weddingRepo repository.WeddingRepositoryInterface
}

func NewTableHandler(tableRepo repository.TableRepositoryInterface, weddingRepo repository.WeddingRepositoryInterface) *TableHandler {
	return &TableHandler{
		tableRepo:   tableRepo,
		weddingRepo: weddingRepo,
	}
}

type CreateTableRequest struct {
	Number   int `json:"number" binding:"required,min=1"`
	Capacity int `json:"capacity" binding:"required,min=1"`
}

type UpdateTableRequest struct {
	Number   int `json:"number" binding:"min=0"`
	Capacity int `json:"capacity" binding:"min=0"`
}

type TableResponse struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
}

func tableResponse(t *model.Table) TableResponse {
	return TableResponse{
		ID:       t.ID.String(),
		Number:   t.Number,
		Capacity: t.Capacity,
	}
}

func (h *TableHandler) Create(c *gin.Context) {
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

	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	table := &model.Table{
		WeddingID: weddingID,
		Number:    req.Number,
		Capacity:  req.Capacity,
	}

	if err := h.tableRepo.Create(c.Request.Context(), table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}

	c.JSON(http.StatusCreated, tableResponse(table))
}

func (h *TableHandler) GetAll(c *gin.Context) {
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

	tables, err := h.tableRepo.GetByWeddingID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tables"})
		return
	}

	resp := make([]TableResponse, 0, len(tables))
	for i := range tables {
		resp = append(resp, tableResponse(&tables[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TableHandler) loadOwnedTable(c *gin.Context) *model.Table {
	userID, ok := authenticatedUser(c)
	if !ok {
		return nil
	}

	tableID, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}

	table, err := h.tableRepo.GetByID(c.Request.Context(), tableID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load table"})
		return nil
	}
	if table == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return nil
	}

	if loadOwnedWedding(c, h.weddingRepo, table.WeddingID, userID) == nil {
		return nil
	}

	return table
}

func (h *TableHandler) Update(c *gin.Context) {
	table := h.loadOwnedTable(c)
	if table == nil {
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Number > 0 {
		table.Number = req.Number
	}
	if req.Capacity > 0 {
		table.Capacity = req.Capacity
	}

	if err := h.tableRepo.Update(c.Request.Context(), table); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}

	c.JSON(http.StatusOK, tableResponse(table))
}

func (h *TableHandler) Delete(c *gin.Context) {
	table := h.loadOwnedTable(c)
	if table == nil {
		return
	}

	// Deleting a table also unseats everyone placed at it, including the
	// couple; the repository does this in one transaction.
	if err := h.tableRepo.Delete(c.Request.Context(), table.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}
