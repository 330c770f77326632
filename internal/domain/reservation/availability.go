package reservation

import "github.com/google/uuid"

// Availability is the outcome of checking candidate modules against a snapshot.
type Availability struct {
	Available bool
	// Occupied holds every module already claimed on that equipment and day,
	// requested or not.
	Occupied   ModuleSet
	candidates ModuleSet
}

// Conflicts returns the requested modules that are occupied.
func (a Availability) Conflicts() ModuleSet {
	return a.candidates.Intersect(a.Occupied)
}

// OccupiedModules unions the modules of every non-cancelled reservation of
// equipmentID on date. The snapshot may hold anything; it is filtered here.
func OccupiedModules(equipmentID uuid.UUID, date Date, snapshot []*Reservation) ModuleSet {
	occupied := ModuleSet{}
	for _, r := range snapshot {
		if r == nil || !r.Occupies(equipmentID, date) {
			continue
		}
		occupied = occupied.Union(r.modules)
	}
	return occupied
}

// CheckAvailability reports whether candidates are free on equipmentID and date.
// An empty candidate set is available.
func CheckAvailability(equipmentID uuid.UUID, date Date, candidates ModuleSet, snapshot []*Reservation) Availability {
	occupied := OccupiedModules(equipmentID, date, snapshot)
	candidates = NewModuleSet(candidates...)
	return Availability{
		Available:  candidates.Intersect(occupied).IsEmpty(),
		Occupied:   occupied,
		candidates: candidates,
	}
}

func FreeModules(equipmentID uuid.UUID, date Date, snapshot []*Reservation) ModuleSet {
	return AllModules().Difference(OccupiedModules(equipmentID, date, snapshot))
}

// Excluding drops the reservation with id from snapshot, so an edit is not
// checked against itself.
func Excluding(snapshot []*Reservation, id uuid.UUID) []*Reservation {
	out := make([]*Reservation, 0, len(snapshot))
	for _, r := range snapshot {
		if r != nil && r.id != id {
			out = append(out, r)
		}
	}
	return out
}
