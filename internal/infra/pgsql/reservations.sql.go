package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, equipment_id, teacher_id, date, modules, status, series_id, frequency, series_end_date, observations, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (Reservation, error) {
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.EquipmentID,
		&i.TeacherID,
		&i.Date,
		&i.Modules,
		&i.Status,
		&i.SeriesID,
		&i.Frequency,
		&i.SeriesEndDate,
		&i.Observations,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createReservation = `-- name: CreateReservation :exec
INSERT INTO reservations (
    id, equipment_id, teacher_id, date, modules, status,
    series_id, frequency, series_end_date, observations, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type CreateReservationParams struct {
	ID            uuid.UUID          `json:"id"`
	EquipmentID   uuid.UUID          `json:"equipment_id"`
	TeacherID     uuid.UUID          `json:"teacher_id"`
	Date          pgtype.Date        `json:"date"`
	Modules       []int32            `json:"modules"`
	Status        string             `json:"status"`
	SeriesID      pgtype.UUID        `json:"series_id"`
	Frequency     pgtype.Text        `json:"frequency"`
	SeriesEndDate pgtype.Date        `json:"series_end_date"`
	Observations  pgtype.Text        `json:"observations"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.EquipmentID,
		arg.TeacherID,
		arg.Date,
		arg.Modules,
		arg.Status,
		arg.SeriesID,
		arg.Frequency,
		arg.SeriesEndDate,
		arg.Observations,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const insertReservationSlots = `-- name: InsertReservationSlots :execrows
INSERT INTO reservation_slots (reservation_id, equipment_id, date, module)
SELECT $1, $2, $3, unnest($4::int[])
`

type InsertReservationSlotsParams struct {
	ReservationID uuid.UUID   `json:"reservation_id"`
	EquipmentID   uuid.UUID   `json:"equipment_id"`
	Date          pgtype.Date `json:"date"`
	Modules       []int32     `json:"modules"`
}

func (q *Queries) InsertReservationSlots(ctx context.Context, db DBTX, arg InsertReservationSlotsParams) (int64, error) {
	result, err := db.Exec(ctx, insertReservationSlots,
		arg.ReservationID,
		arg.EquipmentID,
		arg.Date,
		arg.Modules,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteReservationSlots = `-- name: DeleteReservationSlots :exec
DELETE FROM reservation_slots WHERE reservation_id = $1
`

func (q *Queries) DeleteReservationSlots(ctx context.Context, db DBTX, reservationID uuid.UUID) error {
	_, err := db.Exec(ctx, deleteReservationSlots, reservationID)
	return err
}

const updateReservation = `-- name: UpdateReservation :execrows
UPDATE reservations
SET teacher_id = $2, date = $3, modules = $4, observations = $5, updated_at = $6
WHERE id = $1 AND status <> 'cancelled'
`

type UpdateReservationParams struct {
	ID           uuid.UUID          `json:"id"`
	TeacherID    uuid.UUID          `json:"teacher_id"`
	Date         pgtype.Date        `json:"date"`
	Modules      []int32            `json:"modules"`
	Observations pgtype.Text        `json:"observations"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateReservation(ctx context.Context, db DBTX, arg UpdateReservationParams) (int64, error) {
	result, err := db.Exec(ctx, updateReservation,
		arg.ID,
		arg.TeacherID,
		arg.Date,
		arg.Modules,
		arg.Observations,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateReservationStatus = `-- name: UpdateReservationStatus :execrows
UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1
`

type UpdateReservationStatusParams struct {
	ID        uuid.UUID          `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updateReservationStatus, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const cancelReservationsBySeries = `-- name: CancelReservationsBySeries :many
UPDATE reservations
SET status = 'cancelled', updated_at = $2
WHERE series_id = $1 AND status <> 'cancelled'
RETURNING id, equipment_id, date
`

type CancelReservationsBySeriesParams struct {
	SeriesID  uuid.UUID          `json:"series_id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type CancelReservationsBySeriesRow struct {
	ID          uuid.UUID   `json:"id"`
	EquipmentID uuid.UUID   `json:"equipment_id"`
	Date        pgtype.Date `json:"date"`
}

func (q *Queries) CancelReservationsBySeries(ctx context.Context, db DBTX, arg CancelReservationsBySeriesParams) ([]CancelReservationsBySeriesRow, error) {
	rows, err := db.Query(ctx, cancelReservationsBySeries, arg.SeriesID, arg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CancelReservationsBySeriesRow
	for rows.Next() {
		var i CancelReservationsBySeriesRow
		if err := rows.Scan(&i.ID, &i.EquipmentID, &i.Date); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteReservationSlotsBySeries = `-- name: DeleteReservationSlotsBySeries :exec
DELETE FROM reservation_slots s
USING reservations r
WHERE s.reservation_id = r.id AND r.series_id = $1
`

func (q *Queries) DeleteReservationSlotsBySeries(ctx context.Context, db DBTX, seriesID uuid.UUID) error {
	_, err := db.Exec(ctx, deleteReservationSlotsBySeries, seriesID)
	return err
}

const deleteReservation = `-- name: DeleteReservation :execrows
DELETE FROM reservations WHERE id = $1
`

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReservationForUpdate = `-- name: GetReservationForUpdate :one
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationForUpdate, id))
}

const listReservationsForEquipment = `-- name: ListReservationsForEquipment :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE equipment_id = $1
  AND status <> 'cancelled'
  AND ($2::date IS NULL OR date >= $2)
  AND ($3::date IS NULL OR date <= $3)
ORDER BY date, created_at
`

type ListReservationsForEquipmentParams struct {
	EquipmentID uuid.UUID   `json:"equipment_id"`
	DateFrom    pgtype.Date `json:"date_from"`
	DateTo      pgtype.Date `json:"date_to"`
}

// ListReservationsForEquipment returns the non-cancelled reservations of one
// equipment inside an optional date window.
func (q *Queries) ListReservationsForEquipment(ctx context.Context, db DBTX, arg ListReservationsForEquipmentParams) ([]Reservation, error) {
	return q.listReservations(ctx, db, listReservationsForEquipment, arg.EquipmentID, arg.DateFrom, arg.DateTo)
}

const listActiveReservationsByDate = `-- name: ListActiveReservationsByDate :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE date = $1
  AND status <> 'cancelled'
  AND ($2::uuid IS NULL OR equipment_id = $2)
ORDER BY equipment_id, created_at
`

type ListActiveReservationsByDateParams struct {
	Date        pgtype.Date `json:"date"`
	EquipmentID pgtype.UUID `json:"equipment_id"`
}

func (q *Queries) ListActiveReservationsByDate(ctx context.Context, db DBTX, arg ListActiveReservationsByDateParams) ([]Reservation, error) {
	return q.listReservations(ctx, db, listActiveReservationsByDate, arg.Date, arg.EquipmentID)
}

const listReservationsBySeries = `-- name: ListReservationsBySeries :many
SELECT ` + reservationColumns + `
FROM reservations
WHERE series_id = $1
ORDER BY date
`

func (q *Queries) ListReservationsBySeries(ctx context.Context, db DBTX, seriesID uuid.UUID) ([]Reservation, error) {
	return q.listReservations(ctx, db, listReservationsBySeries, seriesID)
}

func (q *Queries) listReservations(ctx context.Context, db DBTX, query string, args ...interface{}) ([]Reservation, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		i, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const reservationDetailSelect = `
SELECT r.id, r.equipment_id, e.name AS equipment_name,
       r.teacher_id, t.first_name || ' ' || t.last_name AS teacher_name,
       r.date, r.modules, r.status, r.series_id, r.frequency, r.series_end_date,
       r.observations, r.created_at, r.updated_at
FROM reservations r
JOIN equipment e ON e.id = r.equipment_id
JOIN teachers t ON t.id = r.teacher_id
`

type ReservationDetailRow struct {
	ID            uuid.UUID          `json:"id"`
	EquipmentID   uuid.UUID          `json:"equipment_id"`
	EquipmentName string             `json:"equipment_name"`
	TeacherID     uuid.UUID          `json:"teacher_id"`
	TeacherName   string             `json:"teacher_name"`
	Date          pgtype.Date        `json:"date"`
	Modules       []int32            `json:"modules"`
	Status        string             `json:"status"`
	SeriesID      pgtype.UUID        `json:"series_id"`
	Frequency     pgtype.Text        `json:"frequency"`
	SeriesEndDate pgtype.Date        `json:"series_end_date"`
	Observations  pgtype.Text        `json:"observations"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func scanReservationDetail(row interface{ Scan(...any) error }) (ReservationDetailRow, error) {
	var i ReservationDetailRow
	err := row.Scan(
		&i.ID,
		&i.EquipmentID,
		&i.EquipmentName,
		&i.TeacherID,
		&i.TeacherName,
		&i.Date,
		&i.Modules,
		&i.Status,
		&i.SeriesID,
		&i.Frequency,
		&i.SeriesEndDate,
		&i.Observations,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getReservationByID = `-- name: GetReservationByID :one` + reservationDetailSelect + `WHERE r.id = $1
`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (ReservationDetailRow, error) {
	return scanReservationDetail(db.QueryRow(ctx, getReservationByID, id))
}

const listReservationDetails = `-- name: ListReservationDetails :many` + reservationDetailSelect + `WHERE ($1::uuid IS NULL OR r.equipment_id = $1)
  AND ($2::uuid IS NULL OR r.teacher_id = $2)
  AND ($3::text IS NULL OR r.status = $3)
  AND ($4::date IS NULL OR r.date >= $4)
  AND ($5::date IS NULL OR r.date <= $5)
  AND ($6::uuid IS NULL OR r.series_id = $6)
  AND ($7::timestamptz IS NULL OR (r.created_at, r.id) < ($7, $8::uuid))
ORDER BY r.created_at DESC, r.id DESC
LIMIT $9
`

type ListReservationDetailsParams struct {
	EquipmentID    pgtype.UUID        `json:"equipment_id"`
	TeacherID      pgtype.UUID        `json:"teacher_id"`
	Status         pgtype.Text        `json:"status"`
	DateFrom       pgtype.Date        `json:"date_from"`
	DateTo         pgtype.Date        `json:"date_to"`
	SeriesID       pgtype.UUID        `json:"series_id"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

// ListReservationDetails filters on every non-null parameter and pages by
// (created_at, id) descending.
func (q *Queries) ListReservationDetails(ctx context.Context, db DBTX, arg ListReservationDetailsParams) ([]ReservationDetailRow, error) {
	rows, err := db.Query(ctx, listReservationDetails,
		arg.EquipmentID,
		arg.TeacherID,
		arg.Status,
		arg.DateFrom,
		arg.DateTo,
		arg.SeriesID,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationDetailRow
	for rows.Next() {
		i, err := scanReservationDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
