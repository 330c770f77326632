package shared

import (
	"context"
	"time"

	"school-reservations/internal/domain/equipment"
	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/domain/teacher"
	"school-reservations/internal/infra/pgsql"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: like Within but at Serializable isolation, for
	// check-then-insert flows on reservation slots
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db pgsql.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db pgsql.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Equipment() EquipmentRepository
	Teachers() TeacherRepository
	Users() UserRepository
	Reads() CommandReads
	DB() pgsql.DBTX
}

type CommandReads interface {
	EquipmentByID(ctx context.Context, id uuid.UUID) (*EquipmentSnapshot, error)
	TeacherByID(ctx context.Context, id uuid.UUID) (*TeacherSnapshot, error)
	// ReservationByID locks the row when called inside a transaction.
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ReservationsForEquipment returns the non-cancelled reservations of one
	// equipment between from and to inclusive. A zero bound is open.
	ReservationsForEquipment(ctx context.Context, equipmentID uuid.UUID, from, to reservation.Date) ([]*reservation.Reservation, error)
	ReservationsBySeries(ctx context.Context, seriesID uuid.UUID) ([]*reservation.Reservation, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx pgsql.DBTX, res *reservation.Reservation) error
	Update(ctx context.Context, tx pgsql.DBTX, res *reservation.Reservation) error
	UpdateStatus(ctx context.Context, tx pgsql.DBTX, res *reservation.Reservation) error
	CancelSeries(ctx context.Context, tx pgsql.DBTX, seriesID uuid.UUID, at time.Time) ([]CancelledReservation, error)
	Delete(ctx context.Context, tx pgsql.DBTX, id uuid.UUID) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, tx pgsql.DBTX, e *equipment.Equipment) error
	Update(ctx context.Context, tx pgsql.DBTX, e *equipment.Equipment) error
	Delete(ctx context.Context, tx pgsql.DBTX, id uuid.UUID) error
}

type TeacherRepository interface {
	Create(ctx context.Context, tx pgsql.DBTX, t *teacher.Teacher) error
	Update(ctx context.Context, tx pgsql.DBTX, t *teacher.Teacher) error
	Delete(ctx context.Context, tx pgsql.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx pgsql.DBTX, userID uuid.UUID) error
}
