package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanTeacher(row interface{ Scan(...any) error }) (Teacher, error) {
	var i Teacher
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.Course,
		&i.Subject,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createTeacher = `-- name: CreateTeacher :exec
INSERT INTO teachers (id, first_name, last_name, email, course, subject, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateTeacherParams struct {
	ID        uuid.UUID          `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     pgtype.Text        `json:"email"`
	Course    pgtype.Text        `json:"course"`
	Subject   pgtype.Text        `json:"subject"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateTeacher(ctx context.Context, db DBTX, arg CreateTeacherParams) error {
	_, err := db.Exec(ctx, createTeacher,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Course,
		arg.Subject,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateTeacher = `-- name: UpdateTeacher :execrows
UPDATE teachers
SET first_name = $2, last_name = $3, email = $4, course = $5, subject = $6, updated_at = $7
WHERE id = $1
`

type UpdateTeacherParams struct {
	ID        uuid.UUID          `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     pgtype.Text        `json:"email"`
	Course    pgtype.Text        `json:"course"`
	Subject   pgtype.Text        `json:"subject"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateTeacher(ctx context.Context, db DBTX, arg UpdateTeacherParams) (int64, error) {
	result, err := db.Exec(ctx, updateTeacher,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Course,
		arg.Subject,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteTeacher = `-- name: DeleteTeacher :execrows
DELETE FROM teachers WHERE id = $1
`

func (q *Queries) DeleteTeacher(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteTeacher, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getTeacherByID = `-- name: GetTeacherByID :one
SELECT id, first_name, last_name, email, course, subject, created_at, updated_at
FROM teachers
WHERE id = $1
`

func (q *Queries) GetTeacherByID(ctx context.Context, db DBTX, id uuid.UUID) (Teacher, error) {
	return scanTeacher(db.QueryRow(ctx, getTeacherByID, id))
}

const listTeachers = `-- name: ListTeachers :many
SELECT id, first_name, last_name, email, course, subject, created_at, updated_at
FROM teachers
ORDER BY last_name, first_name, id
`

func (q *Queries) ListTeachers(ctx context.Context, db DBTX) ([]Teacher, error) {
	rows, err := db.Query(ctx, listTeachers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Teacher
	for rows.Next() {
		i, err := scanTeacher(rows)
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
