package seating

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/logging"
	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrNoTables means the wedding has no tables configured; reported
	// before any computation starts.
	ErrNoTables = errors.New("seating: no tables configured")

	ErrWeddingNotFound   = errors.New("seating: wedding not found")
	ErrInvalidAssignment = errors.New("seating: assignment needs a member id or the couple flag")
)

// Result reports how a seating operation accounted for every seatable guest.
type Result struct {
	AssignedCount   int `json:"assigned_count"`
	UnassignedCount int `json:"unassigned_count"`
}

// Assignment is one manual seat change: a family member or the couple,
// moved to a table or unseated when TableID is nil.
type Assignment struct {
	MemberID *uuid.UUID
	Couple   bool
	TableID  *uuid.UUID
}

// Service loads live seating state, runs the allocator and commits the
// outcome in one transaction.
type Service struct {
	weddings repository.WeddingRepositoryInterface
	tables   repository.TableRepositoryInterface
	families repository.FamilyRepositoryInterface
	seats    repository.SeatingRepositoryInterface

	// newRand is swapped for a seeded source in tests.
	newRand func() *rand.Rand
}

func NewService(
	weddings repository.WeddingRepositoryInterface,
	tables repository.TableRepositoryInterface,
	families repository.FamilyRepositoryInterface,
	seats repository.SeatingRepositoryInterface,
) *Service {
	return &Service{
		weddings: weddings,
		tables:   tables,
		families: families,
		seats:    seats,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// AssignRandom reseats the whole wedding: every attending member and, if not
// already seated, the couple. Guests the allocator could not place get their
// previous table cleared so no stale assignment survives. The commit is
// fully transactional; a persistence failure rolls everything back.
func (s *Service) AssignRandom(ctx context.Context, weddingID uuid.UUID) (*Result, error) {
	wedding, err := s.weddings.GetByID(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	if wedding == nil {
		return nil, ErrWeddingNotFound
	}

	tables, err := s.tables.GetByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	members, err := s.families.GetAttendingMembers(ctx, weddingID)
	if err != nil {
		return nil, err
	}

	spaces := make([]TableSpace, len(tables))
	for i, table := range tables {
		spaces[i] = TableSpace{ID: table.ID, Capacity: table.Capacity}
	}

	coupleUnseated := wedding.CoupleTableID == nil
	groups := BuildGroups(members, coupleUnseated)
	outcome := Allocate(spaces, groups, s.newRand())

	seats := make([]repository.SeatUpdate, 0, len(members))
	for _, member := range members {
		update := repository.SeatUpdate{MemberID: member.ID}
		if tableID, ok := outcome.MemberTables[member.ID]; ok {
			id := tableID
			update.TableID = &id
		}
		seats = append(seats, update)
	}

	var couple *repository.CoupleUpdate
	if coupleUnseated {
		couple = &repository.CoupleUpdate{TableID: outcome.CoupleTable}
	}

	if err := s.seats.SaveAssignments(ctx, weddingID, seats, couple); err != nil {
		return nil, err
	}

	result := &Result{
		AssignedCount:   outcome.AssignedCount,
		UnassignedCount: len(outcome.Unassigned),
	}
	logging.SLog.Infow("random seating committed",
		"wedding_id", weddingID,
		"assigned", result.AssignedCount,
		"unassigned", result.UnassignedCount,
	)
	return result, nil
}

// AssignManual applies explicit seat changes with no capacity checking and
// no rebalancing of anyone else, in one transaction. Couple entries go to
// the wedding's couple table reference instead of a member row.
func (s *Service) AssignManual(ctx context.Context, weddingID uuid.UUID, assignments []Assignment) error {
	var seats []repository.SeatUpdate
	var couple *repository.CoupleUpdate

	for _, a := range assignments {
		switch {
		case a.Couple:
			couple = &repository.CoupleUpdate{TableID: a.TableID}
		case a.MemberID != nil:
			seats = append(seats, repository.SeatUpdate{MemberID: *a.MemberID, TableID: a.TableID})
		default:
			return ErrInvalidAssignment
		}
	}

	return s.seats.SaveAssignments(ctx, weddingID, seats, couple)
}
