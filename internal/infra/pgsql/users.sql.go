package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findUserByEmail = `-- name: FindUserByEmail :one
SELECT id, email, password_hash, role, teacher_id, is_active, last_login, created_at, updated_at
FROM users
WHERE email = lower($1)
ORDER BY is_active DESC, created_at DESC
LIMIT 1
`

func (q *Queries) FindUserByEmail(ctx context.Context, db DBTX, email string) (User, error) {
	row := db.QueryRow(ctx, findUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.PasswordHash,
		&i.Role,
		&i.TeacherID,
		&i.IsActive,
		&i.LastLogin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findUserByID = `-- name: FindUserByID :one
SELECT id, email, role, teacher_id, is_active, last_login
FROM users
WHERE id = $1
`

type FindUserByIDRow struct {
	ID        uuid.UUID          `json:"id"`
	Email     string             `json:"email"`
	Role      string             `json:"role"`
	TeacherID pgtype.UUID        `json:"teacher_id"`
	IsActive  bool               `json:"is_active"`
	LastLogin pgtype.Timestamptz `json:"last_login"`
}

func (q *Queries) FindUserByID(ctx context.Context, db DBTX, id uuid.UUID) (FindUserByIDRow, error) {
	row := db.QueryRow(ctx, findUserByID, id)
	var i FindUserByIDRow
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Role,
		&i.TeacherID,
		&i.IsActive,
		&i.LastLogin,
	)
	return i, err
}

const updateUserLastLogin = `-- name: UpdateUserLastLogin :execrows
UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1 AND is_active = true
`

func (q *Queries) UpdateUserLastLogin(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, updateUserLastLogin, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
