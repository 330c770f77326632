package reservation

import (
	"slices"

	"github.com/google/uuid"
)

// Group is either every occurrence of one series or a single standalone
// reservation.
type Group struct {
	Key          string
	SeriesID     *uuid.UUID
	Reservations []*Reservation
}

func (g Group) FirstDate() Date {
	return g.Reservations[0].date
}

// GroupBySeries buckets reservations by series id. Standalone reservations get
// their own group keyed "individual-<id>". Groups and their members are ordered
// by date.
func GroupBySeries(reservations []*Reservation) []Group {
	index := map[string]int{}
	var groups []Group
	for _, r := range reservations {
		key := "individual-" + r.id.String()
		if r.series != nil {
			key = r.series.ID.String()
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, SeriesID: r.SeriesID()})
		}
		groups[i].Reservations = append(groups[i].Reservations, r)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Reservations, func(a, b *Reservation) int {
			return a.date.Compare(b.date)
		})
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		return a.FirstDate().Compare(b.FirstDate())
	})
	return groups
}
