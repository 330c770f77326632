//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBySeries(t *testing.T) {
	seriesID := uuid.New()
	end := d(2025, time.October, 20)
	single := builder.NewReservationBuilder().WithDate(d(2025, time.October, 8)).BuildDomain()
	second := builder.NewReservationBuilder().WithDate(d(2025, time.October, 13)).WithSeries(seriesID, reservation.FrequencyWeekly, end).BuildDomain()
	first := builder.NewReservationBuilder().WithDate(d(2025, time.October, 6)).WithSeries(seriesID, reservation.FrequencyWeekly, end).BuildDomain()

	groups := reservation.GroupBySeries([]*reservation.Reservation{single, second, first})

	require.Len(t, groups, 2)
	assert.Equal(t, seriesID.String(), groups[0].Key)
	assert.Equal(t, seriesID, *groups[0].SeriesID)
	require.Len(t, groups[0].Reservations, 2)
	assert.Equal(t, first.ID(), groups[0].Reservations[0].ID())
	assert.Equal(t, "individual-"+single.ID().String(), groups[1].Key)
	assert.Nil(t, groups[1].SeriesID)
}

func TestComputeEquipmentStats(t *testing.T) {
	equipmentID := uuid.New()
	teacherA, teacherB := uuid.New(), uuid.New()
	reservations := []*reservation.Reservation{
		builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithTeacherID(teacherA).WithDate(d(2025, time.October, 6)).WithModules(1, 2).BuildDomain(),
		builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithTeacherID(teacherB).WithDate(d(2025, time.October, 6)).WithModules(5).BuildDomain(),
		builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithTeacherID(teacherA).WithDate(d(2025, time.October, 7)).WithModules(7, 8, 9).BuildDomain(),
		builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 7)).WithModules(10).AsPending().BuildDomain(),
		builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 7)).WithModules(11).AsCancelled().BuildDomain(),
		builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.November, 1)).WithModules(1).BuildDomain(),
		builder.NewReservationBuilder().WithDate(d(2025, time.October, 7)).WithModules(1).BuildDomain(),
	}

	got := reservation.ComputeEquipmentStats(equipmentID, reservations, d(2025, time.October, 1), d(2025, time.October, 31))

	assert.Equal(t, 3, got.TotalReservations)
	assert.Equal(t, 6, got.TotalModules)
	assert.Equal(t, 2, got.DistinctDays)
	assert.Equal(t, 2, got.DistinctTeachers)
	assert.InDelta(t, 2.0, got.AverageModules, 0.001)
}
