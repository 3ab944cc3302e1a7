// Package seating assigns attendance-confirmed guests to tables. The
// allocator is a randomized greedy bin-packer that tries to keep social
// groups at one table and falls back to per-guest placement when a group
// does not fit anywhere whole.
package seating

import (
	"math/rand"

	"github.com/google/uuid"
)

// CoupleSlot distinguishes the two synthetic seats of the hosting couple
// from regular family members.
type CoupleSlot int

const (
	CoupleNone CoupleSlot = iota
	CoupleFirst
	CoupleSecond
)

// Seat is one seatable guest: either a family member (MemberID set,
// Couple == CoupleNone) or one half of the hosting couple.
type Seat struct {
	MemberID uuid.UUID
	Couple   CoupleSlot
}

// IsCouple reports whether the seat belongs to the hosting couple.
func (s Seat) IsCouple() bool {
	return s.Couple != CoupleNone
}

// Group is a set of seats the allocator tries to place at a single table.
type Group struct {
	Key   string
	Seats []Seat
}

// TableSpace is a table's identity and capacity as seen by the allocator.
type TableSpace struct {
	ID       uuid.UUID
	Capacity int
}

// Outcome is a complete allocation: every seatable guest ends up either in
// MemberTables/the couple table or in Unassigned.
type Outcome struct {
	// MemberTables maps each placed family member to their table.
	MemberTables map[uuid.UUID]uuid.UUID
	// CoupleTable is the table shared by the couple, nil if the couple was
	// not part of this run or could not be seated at all.
	CoupleTable *uuid.UUID
	// Unassigned holds the overflow that no table could take.
	Unassigned []Seat
	// AssignedCount counts placed seats, couple seats included.
	AssignedCount int
}

// Allocate packs groups into tables. The group order is shuffled once and
// the table order is reshuffled for every group, so repeated runs on the
// same input produce different valid seatings. Passing the same rng seed
// reproduces a run exactly.
//
// Phase 1 places a whole group at the first shuffled table with enough
// remaining capacity. A group that fits nowhere whole falls back to phase 2:
// its members are placed one by one scanning tables in their original order,
// and members that still fit nowhere are reported unassigned. Couple seats
// are pinned to one shared table: once the first couple seat lands
// somewhere, the second either joins that table or goes unassigned, because
// the data model only records a single couple table.
func Allocate(tables []TableSpace, groups []Group, rng *rand.Rand) Outcome {
	outcome := Outcome{
		MemberTables: make(map[uuid.UUID]uuid.UUID),
	}

	remaining := make([]int, len(tables))
	for i, table := range tables {
		remaining[i] = table.Capacity
	}

	groupOrder := rng.Perm(len(groups))
	for _, gi := range groupOrder {
		group := groups[gi]

		placed := false
		for _, ti := range rng.Perm(len(tables)) {
			if remaining[ti] >= len(group.Seats) {
				remaining[ti] -= len(group.Seats)
				placeGroup(&outcome, group, tables[ti].ID)
				placed = true
				break
			}
		}
		if !placed {
			placeIndividually(&outcome, group, tables, remaining)
		}
	}

	return outcome
}

func placeGroup(outcome *Outcome, group Group, tableID uuid.UUID) {
	for _, seat := range group.Seats {
		placeSeat(outcome, seat, tableID)
	}
}

// placeIndividually is the phase-2 fallback: first table with a free seat,
// scanning in the original table order.
func placeIndividually(outcome *Outcome, group Group, tables []TableSpace, remaining []int) {
	for _, seat := range group.Seats {
		if seat.IsCouple() && outcome.CoupleTable != nil {
			// The couple's table is already decided; join it or overflow.
			joined := false
			for i, table := range tables {
				if table.ID == *outcome.CoupleTable && remaining[i] >= 1 {
					remaining[i]--
					placeSeat(outcome, seat, table.ID)
					joined = true
					break
				}
			}
			if !joined {
				outcome.Unassigned = append(outcome.Unassigned, seat)
			}
			continue
		}

		placed := false
		for i, table := range tables {
			if remaining[i] >= 1 {
				remaining[i]--
				placeSeat(outcome, seat, table.ID)
				placed = true
				break
			}
		}
		if !placed {
			outcome.Unassigned = append(outcome.Unassigned, seat)
		}
	}
}

func placeSeat(outcome *Outcome, seat Seat, tableID uuid.UUID) {
	outcome.AssignedCount++
	if seat.IsCouple() {
		if outcome.CoupleTable == nil {
			id := tableID
			outcome.CoupleTable = &id
		}
		return
	}
	outcome.MemberTables[seat.MemberID] = tableID
}
