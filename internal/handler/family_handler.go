package handler

import (
	"net/http"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

type FamilyHandler struct {
	familyRepo  repository.FamilyRepositoryInterface
	weddingRepo repository.WeddingRepositoryInterface
}

func NewFamilyHandler(familyRepo repository.FamilyRepositoryInterface, weddingRepo repository.WeddingRepositoryInterface) *FamilyHandler {
	return &FamilyHandler{
		familyRepo:  familyRepo,
		weddingRepo: weddingRepo,
	}
}

type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateMemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Attending    bool   `json:"attending"`
	SeatingGroup string `json:"seating_group"`
}

type UpdateMemberRequest struct {
	Name         *string `json:"name"`
	Attending    *bool   `json:"attending"`
	SeatingGroup *string `json:"seating_group"`
}

type FamilyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MemberResponse struct {
	ID           string  `json:"id"`
	FamilyID     string  `json:"family_id"`
	Name         string  `json:"name"`
	Attending    bool    `json:"attending"`
	SeatingGroup string  `json:"seating_group"`
	TableID      *string `json:"table_id"`
}

func memberResponse(m *model.FamilyMember) MemberResponse {
	resp := MemberResponse{
		ID:           m.ID.String(),
		FamilyID:     m.FamilyID.String(),
		Name:         m.Name,
		Attending:    m.Attending,
		SeatingGroup: m.SeatingGroup,
	}
	if m.TableID != nil {
		id := m.TableID.String()
		resp.TableID = &id
	}
	return resp
}

func (h *FamilyHandler) Create(c *gin.Context) {
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

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	family := &model.Family{
		WeddingID: weddingID,
		Name:      req.Name,
	}

	if err := h.familyRepo.Create(c.Request.Context(), family); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
		return
	}

	c.JSON(http.StatusCreated, FamilyResponse{ID: family.ID.String(), Name: family.Name})
}

func (h *FamilyHandler) GetAll(c *gin.Context) {
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

	families, err := h.familyRepo.GetByWeddingID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load families"})
		return
	}

	resp := make([]FamilyResponse, 0, len(families))
	for i := range families {
		resp = append(resp, FamilyResponse{ID: families[i].ID.String(), Name: families[i].Name})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FamilyHandler) CreateMember(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	familyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	family, err := h.familyRepo.GetByID(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load family"})
		return
	}
	if family == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	if loadOwnedWedding(c, h.weddingRepo, family.WeddingID, userID) == nil {
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member := &model.FamilyMember{
		FamilyID:     family.ID,
		WeddingID:    family.WeddingID,
		Name:         req.Name,
		Attending:    req.Attending,
		SeatingGroup: req.SeatingGroup,
	}

	if err := h.familyRepo.CreateMember(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family member"})
		return
	}

	c.JSON(http.StatusCreated, memberResponse(member))
}

func (h *FamilyHandler) GetMembers(c *gin.Context) {
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

	members, err := h.familyRepo.GetMembersByWeddingID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load family members"})
		return
	}

	resp := make([]MemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, memberResponse(&members[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FamilyHandler) UpdateMember(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	memberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.familyRepo.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load family member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family member not found"})
		return
	}

	if loadOwnedWedding(c, h.weddingRepo, member.WeddingID, userID) == nil {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Attending != nil {
		member.Attending = *req.Attending
		// A guest who is no longer attending gives up their seat.
		if !member.Attending {
			member.TableID = nil
		}
	}
	if req.SeatingGroup != nil {
		member.SeatingGroup = *req.SeatingGroup
	}

	if err := h.familyRepo.UpdateMember(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update family member"})
		return
	}

	c.JSON(http.StatusOK, memberResponse(member))
}
