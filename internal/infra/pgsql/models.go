package pgsql

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservation struct {
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

type Equipment struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description pgtype.Text        `json:"description"`
	Location    pgtype.Text        `json:"location"`
	Available   bool               `json:"available"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Teacher struct {
	ID        uuid.UUID          `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     pgtype.Text        `json:"email"`
	Course    pgtype.Text        `json:"course"`
	Subject   pgtype.Text        `json:"subject"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type User struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	TeacherID    pgtype.UUID        `json:"teacher_id"`
	IsActive     bool               `json:"is_active"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}
