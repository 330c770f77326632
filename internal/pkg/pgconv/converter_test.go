//go:build unit

package pgconv_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"school-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("find equipment: %w", sql.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
	assert.False(t, pgconv.IsNoRows(nil))
}

func TestUUID(t *testing.T) {
	id := uuid.New()

	assert.False(t, pgconv.UUIDPtrToPgtype(nil).Valid)
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))

	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

func TestText(t *testing.T) {
	assert.False(t, pgconv.TextOrNull("").Valid)
	assert.Equal(t, pgtype.Text{String: "Room 12", Valid: true}, pgconv.TextOrNull("Room 12"))

	assert.Nil(t, pgconv.StringPtrFromPgtype(pgtype.Text{}))
	src := pgtype.Text{String: "Lab", Valid: true}
	got := pgconv.StringPtrFromPgtype(src)
	require.NotNil(t, got)
	assert.Equal(t, "Lab", *got)
}

func TestBool(t *testing.T) {
	yes := true
	assert.Equal(t, pgtype.Bool{Bool: true, Valid: true}, pgconv.BoolPtrToPgtype(&yes))
	assert.False(t, pgconv.BoolPtrToPgtype(nil).Valid)
}

func TestTime(t *testing.T) {
	at := time.Date(2025, 10, 6, 8, 40, 0, 0, time.UTC)

	assert.Equal(t, at, pgconv.TimeFromPgtype(pgconv.TimeToPgtype(at)))
	assert.True(t, pgconv.TimeFromPgtype(pgtype.Timestamptz{}).IsZero())
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
	assert.Equal(t, at, *pgconv.TimePtrFromPgtype(pgconv.TimeToPgtype(at)))
}
