package handler

import (
	"errors"
	"net/http"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/repository"
	"github.com/ndsrf/wedding-sub002/internal/seating"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SeatingHandler struct {
	service     *seating.Service
	weddingRepo repository.WeddingRepositoryInterface
	tableRepo   repository.TableRepositoryInterface
	familyRepo  repository.FamilyRepositoryInterface
}

func NewSeatingHandler(
	service *seating.Service,
	weddingRepo repository.WeddingRepositoryInterface,
	tableRepo repository.TableRepositoryInterface,
	familyRepo repository.FamilyRepositoryInterface,
) *SeatingHandler {
	return &SeatingHandler{
		service:     service,
		weddingRepo: weddingRepo,
		tableRepo:   tableRepo,
		familyRepo:  familyRepo,
	}
}

type ManualAssignmentRequest struct {
	Assignments []ManualAssignment `json:"assignments" binding:"required"`
}

// ManualAssignment seats one family member, or the couple, at a table.
// A null table_id unseats them.
type ManualAssignment struct {
	MemberID *string `json:"member_id"`
	Couple   bool    `json:"couple"`
	TableID  *string `json:"table_id"`
}

type SeatedTableResponse struct {
	ID       string           `json:"id"`
	Number   int              `json:"number"`
	Capacity int              `json:"capacity"`
	Couple   bool             `json:"couple"`
	Seated   int              `json:"seated"`
	Members  []MemberResponse `json:"members"`
}

type SeatingViewResponse struct {
	Tables     []SeatedTableResponse `json:"tables"`
	Unassigned []MemberResponse      `json:"unassigned"`
}

func (h *SeatingHandler) AssignRandom(c *gin.Context) {
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

	result, err := h.service.AssignRandom(c.Request.Context(), weddingID)
	if err != nil {
		switch {
		case errors.Is(err, seating.ErrNoTables):
			c.JSON(http.StatusConflict, gin.H{"error": "Add at least one table before assigning seats"})
		case errors.Is(err, seating.ErrWeddingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wedding not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Seating assignment failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SeatingHandler) AssignManual(c *gin.Context) {
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

	var req ManualAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignments := make([]seating.Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignment := seating.Assignment{Couple: a.Couple}
		if a.MemberID != nil {
			id, err := uuid.Parse(*a.MemberID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
				return
			}
			assignment.MemberID = &id
		}
		if a.TableID != nil {
			id, err := uuid.Parse(*a.TableID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID format"})
				return
			}
			table, err := h.tableRepo.GetByID(c.Request.Context(), id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load table"})
				return
			}
			if table == nil || table.WeddingID != weddingID {
				c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
				return
			}
			assignment.TableID = &id
		}
		assignments = append(assignments, assignment)
	}

	if err := h.service.AssignManual(c.Request.Context(), weddingID, assignments); err != nil {
		switch {
		case errors.Is(err, seating.ErrInvalidAssignment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each assignment needs a member ID or the couple flag"})
		case errors.Is(err, repository.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Family member not found"})
		case errors.Is(err, repository.ErrWeddingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wedding not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assignments"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignments saved"})
}

// SeatingView returns every table with its seated guests, flags the couple's
// table, and lists attending guests without a seat.
func (h *SeatingHandler) SeatingView(c *gin.Context) {
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

	tables, err := h.tableRepo.GetByWeddingID(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tables"})
		return
	}

	members, err := h.familyRepo.GetAttendingMembers(c.Request.Context(), weddingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load family members"})
		return
	}

	byTable := make(map[uuid.UUID][]MemberResponse)
	var unassigned []MemberResponse
	for i := range members {
		mr := memberResponse(&members[i])
		if members[i].TableID == nil {
			unassigned = append(unassigned, mr)
			continue
		}
		byTable[*members[i].TableID] = append(byTable[*members[i].TableID], mr)
	}

	resp := SeatingViewResponse{
		Tables:     make([]SeatedTableResponse, 0, len(tables)),
		Unassigned: unassigned,
	}
	for i := range tables {
		seated := byTable[tables[i].ID]
		if seated == nil {
			seated = []MemberResponse{}
		}
		entry := SeatedTableResponse{
			ID:       tables[i].ID.String(),
			Number:   tables[i].Number,
			Capacity: tables[i].Capacity,
			Members:  seated,
			Seated:   len(seated),
		}
		if wedding.CoupleTableID != nil && *wedding.CoupleTableID == tables[i].ID {
			entry.Couple = true
			entry.Seated += model.CoupleSeats
		}
		resp.Tables = append(resp.Tables, entry)
	}

	c.JSON(http.StatusOK, resp)
}
