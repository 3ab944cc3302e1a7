package seating

import (
	"github.com/ndsrf/wedding-sub002/internal/model"
)

// DefaultGroupKey buckets family members that have no explicit seating group.
const DefaultGroupKey = "default"

// coupleGroupKey identifies the hosting couple's pseudo-group.
const coupleGroupKey = "couple"

// BuildGroups partitions attending members into allocation groups keyed by
// (family, seating group). When includeCouple is set (the couple has no
// table yet) a two-seat pseudo-group for the hosting couple is appended.
// Group order follows first appearance in members; the allocator shuffles
// anyway.
func BuildGroups(members []model.FamilyMember, includeCouple bool) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, member := range members {
		bucket := member.SeatingGroup
		if bucket == "" {
			bucket = DefaultGroupKey
		}
		key := member.FamilyID.String() + "/" + bucket

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Seats = append(groups[i].Seats, Seat{MemberID: member.ID})
	}

	if includeCouple {
		groups = append(groups, Group{
			Key: coupleGroupKey,
			Seats: []Seat{
				{Couple: CoupleFirst},
				{Couple: CoupleSecond},
			},
		})
	}

	return groups
}
