//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateSeries(t *testing.T) {
	equipmentID := uuid.New()
	dates := reservation.GenerateDates(d(2025, time.October, 6), reservation.FrequencyWeekly, d(2025, time.October, 27))
	candidates := reservation.NewModuleSet(1, 2)
	dateOpt := cmp.AllowUnexported(reservation.Date{})

	t.Run("1日だけ衝突", func(t *testing.T) {
		snapshot := []*reservation.Reservation{
			builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 13)).WithModules(2).BuildDomain(),
		}

		got := reservation.ValidateSeries(equipmentID, dates, candidates, snapshot)

		assert.False(t, got.Valid)
		if diff := cmp.Diff([]reservation.Date{d(2025, time.October, 13)}, got.ConflictingDates, dateOpt); diff != "" {
			t.Errorf("ConflictingDates mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, reservation.ModuleSet{2}, got.Conflicts[d(2025, time.October, 13)])
	})

	t.Run("最初の衝突で止まらずすべて集める", func(t *testing.T) {
		snapshot := []*reservation.Reservation{
			builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 27)).WithModules(1).BuildDomain(),
			builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 6)).WithModules(2, 3).BuildDomain(),
			builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 20)).WithModules(5).BuildDomain(),
		}

		got := reservation.ValidateSeries(equipmentID, dates, candidates, snapshot)

		assert.False(t, got.Valid)
		want := []reservation.Date{d(2025, time.October, 6), d(2025, time.October, 27)}
		if diff := cmp.Diff(want, got.ConflictingDates, dateOpt); diff != "" {
			t.Errorf("ConflictingDates mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("衝突がなければ有効", func(t *testing.T) {
		snapshot := []*reservation.Reservation{
			builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 13)).WithModules(2).AsCancelled().BuildDomain(),
		}

		got := reservation.ValidateSeries(equipmentID, dates, candidates, snapshot)

		assert.True(t, got.Valid)
		assert.Empty(t, got.ConflictingDates)
	})
}
