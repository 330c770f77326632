package converter

import (
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func DateToPgtype(d reservation.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

// DateFromPgtype reads the calendar day as stored; pgx returns dates at UTC
// midnight.
func DateFromPgtype(pd pgtype.Date) reservation.Date {
	if !pd.Valid {
		return reservation.Date{}
	}
	return reservation.DateOf(pd.Time.UTC())
}

func ModulesToInfra(modules reservation.ModuleSet) []int32 {
	out := make([]int32, len(modules))
	for i, m := range modules {
		out[i] = int32(m) // #nosec G115 -- modules are 1..15
	}
	return out
}

func ModulesFromInfra(raw []int32) reservation.ModuleSet {
	modules := make([]reservation.Module, len(raw))
	for i, m := range raw {
		modules[i] = reservation.Module(m)
	}
	return reservation.NewModuleSet(modules...)
}

func ReservationToInfra(res *reservation.Reservation) pgsql.CreateReservationParams {
	params := pgsql.CreateReservationParams{
		ID:           res.ID(),
		EquipmentID:  res.EquipmentID(),
		TeacherID:    res.TeacherID(),
		Date:         DateToPgtype(res.Date()),
		Modules:      ModulesToInfra(res.Modules()),
		Status:       res.Status().String(),
		Observations: pgconv.TextOrNull(res.Observations().String()),
		CreatedAt:    pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(res.UpdatedAt()),
	}

	if s := res.Series(); s != nil {
		params.SeriesID = pgconv.UUIDToPgtype(s.ID)
		params.Frequency = pgconv.StringToPgtype(s.Frequency.String())
		params.SeriesEndDate = DateToPgtype(s.EndDate)
	}

	return params
}

func ReservationToUpdateParams(res *reservation.Reservation) pgsql.UpdateReservationParams {
	return pgsql.UpdateReservationParams{
		ID:           res.ID(),
		TeacherID:    res.TeacherID(),
		Date:         DateToPgtype(res.Date()),
		Modules:      ModulesToInfra(res.Modules()),
		Observations: pgconv.TextOrNull(res.Observations().String()),
		UpdatedAt:    pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func SlotsOf(res *reservation.Reservation) pgsql.InsertReservationSlotsParams {
	return pgsql.InsertReservationSlotsParams{
		ReservationID: res.ID(),
		EquipmentID:   res.EquipmentID(),
		Date:          DateToPgtype(res.Date()),
		Modules:       ModulesToInfra(res.Modules()),
	}
}

// ReservationFromInfra rebuilds the entity. Rows come from the database, so a
// status or observation that fails validation is carried over as stored.
func ReservationFromInfra(row pgsql.Reservation) *reservation.Reservation {
	var series *reservation.Series
	if row.SeriesID.Valid {
		series = &reservation.Series{
			ID:        *pgconv.UUIDPtrFromPgtype(row.SeriesID),
			Frequency: reservation.Frequency(row.Frequency.String),
			EndDate:   DateFromPgtype(row.SeriesEndDate),
		}
	}

	observations, _ := reservation.NewObservations(row.Observations.String)

	return reservation.ReconstructReservation(
		row.ID,
		row.EquipmentID,
		row.TeacherID,
		DateFromPgtype(row.Date),
		ModulesFromInfra(row.Modules),
		reservation.Status(row.Status),
		series,
		observations,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func ReservationsFromInfra(rows []pgsql.Reservation) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		out[i] = ReservationFromInfra(row)
	}
	return out
}
