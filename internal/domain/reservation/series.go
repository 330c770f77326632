package reservation

import "github.com/google/uuid"

type SeriesValidation struct {
	Valid            bool
	ConflictingDates []Date
	// Conflicts maps each conflicting date to the requested modules taken on it.
	Conflicts map[Date]ModuleSet
}

// ValidateSeries checks every date and collects all conflicts instead of
// stopping at the first one.
func ValidateSeries(equipmentID uuid.UUID, dates []Date, candidates ModuleSet, snapshot []*Reservation) SeriesValidation {
	result := SeriesValidation{
		ConflictingDates: []Date{},
		Conflicts:        map[Date]ModuleSet{},
	}
	for _, d := range dates {
		availability := CheckAvailability(equipmentID, d, candidates, snapshot)
		if availability.Available {
			continue
		}
		result.ConflictingDates = append(result.ConflictingDates, d)
		result.Conflicts[d] = availability.Conflicts()
	}
	result.Valid = len(result.ConflictingDates) == 0
	return result
}
