package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanEquipment(row interface{ Scan(...any) error }) (Equipment, error) {
	var i Equipment
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Location,
		&i.Available,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createEquipment = `-- name: CreateEquipment :exec
INSERT INTO equipment (id, name, description, location, available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateEquipmentParams struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description pgtype.Text        `json:"description"`
	Location    pgtype.Text        `json:"location"`
	Available   bool               `json:"available"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateEquipment(ctx context.Context, db DBTX, arg CreateEquipmentParams) error {
	_, err := db.Exec(ctx, createEquipment,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Location,
		arg.Available,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateEquipment = `-- name: UpdateEquipment :execrows
UPDATE equipment
SET name = $2, description = $3, location = $4, available = $5, updated_at = $6
WHERE id = $1
`

type UpdateEquipmentParams struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description pgtype.Text        `json:"description"`
	Location    pgtype.Text        `json:"location"`
	Available   bool               `json:"available"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateEquipment(ctx context.Context, db DBTX, arg UpdateEquipmentParams) (int64, error) {
	result, err := db.Exec(ctx, updateEquipment,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Location,
		arg.Available,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteEquipment = `-- name: DeleteEquipment :execrows
DELETE FROM equipment WHERE id = $1
`

func (q *Queries) DeleteEquipment(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteEquipment, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getEquipmentByID = `-- name: GetEquipmentByID :one
SELECT id, name, description, location, available, created_at, updated_at
FROM equipment
WHERE id = $1
`

func (q *Queries) GetEquipmentByID(ctx context.Context, db DBTX, id uuid.UUID) (Equipment, error) {
	return scanEquipment(db.QueryRow(ctx, getEquipmentByID, id))
}

const listEquipment = `-- name: ListEquipment :many
SELECT id, name, description, location, available, created_at, updated_at
FROM equipment
WHERE ($1::boolean IS NULL OR available = $1)
ORDER BY name, id
`

func (q *Queries) ListEquipment(ctx context.Context, db DBTX, available pgtype.Bool) ([]Equipment, error) {
	rows, err := db.Query(ctx, listEquipment, available)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Equipment
	for rows.Next() {
		i, err := scanEquipment(rows)
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
