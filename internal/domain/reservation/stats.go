package reservation

import "github.com/google/uuid"

type EquipmentStats struct {
	EquipmentID       uuid.UUID
	From              Date
	To                Date
	TotalReservations int
	TotalModules      int
	DistinctDays      int
	DistinctTeachers  int
	AverageModules    float64
}

// ComputeEquipmentStats summarises the confirmed reservations of equipmentID
// between from and to, both inclusive. A zero bound leaves that side open.
func ComputeEquipmentStats(equipmentID uuid.UUID, reservations []*Reservation, from, to Date) EquipmentStats {
	stats := EquipmentStats{EquipmentID: equipmentID, From: from, To: to}
	days := map[Date]struct{}{}
	teachers := map[uuid.UUID]struct{}{}
	for _, r := range reservations {
		if r.equipmentID != equipmentID || r.status != StatusConfirmed {
			continue
		}
		if !from.IsZero() && r.date.Before(from) {
			continue
		}
		if !to.IsZero() && r.date.After(to) {
			continue
		}
		stats.TotalReservations++
		stats.TotalModules += len(r.modules)
		days[r.date] = struct{}{}
		teachers[r.teacherID] = struct{}{}
	}
	stats.DistinctDays = len(days)
	stats.DistinctTeachers = len(teachers)
	if stats.TotalReservations > 0 {
		stats.AverageModules = float64(stats.TotalModules) / float64(stats.TotalReservations)
	}
	return stats
}
