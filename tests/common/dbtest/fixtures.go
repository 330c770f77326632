//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"school-reservations/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const (
	DefaultPassword      = "password123"
	DefaultEquipmentName = "Projector 1"
	DefaultTeacherEmail  = "default.teacher@school.cl"
)

var (
	hashOnce    sync.Once
	defaultHash string
)

// defaultPasswordHash is computed once; bcrypt is too slow to run per fixture.
func defaultPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := password.Hash(DefaultPassword)
		require.NoError(t, err)
		defaultHash = h
	})
	return defaultHash
}

// CreateTestUser inserts an active account whose password is DefaultPassword.
func CreateTestUser(t *testing.T, db DBLike, email, role string, teacherID *uuid.UUID) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, teacher_id, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) WHERE is_active = true DO NOTHING",
		userID, email, defaultPasswordHash(t), role, teacherID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

func CreateTestTeacher(t *testing.T, db DBLike, firstName, lastName string) uuid.UUID {
	t.Helper()

	teacherID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO teachers (id, first_name, last_name) VALUES ($1, $2, $3)",
		teacherID, firstName, lastName)
	require.NoError(t, err)
	return teacherID
}

func CreateTestEquipment(t *testing.T, db DBLike, name string, available bool) uuid.UUID {
	t.Helper()

	equipmentID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO equipment (id, name, available) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING",
		equipmentID, name, available)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM equipment WHERE name = $1", name).Scan(&equipmentID)
	}
	return equipmentID
}

func LookupEquipment(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM equipment WHERE name = $1", name).Scan(&id)
	require.NoError(t, err)
	return id
}

func LookupTeacher(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM teachers WHERE email = $1", email).Scan(&id)
	require.NoError(t, err)
	return id
}

// SeedReferenceData inserts one equipment item and one teacher.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO equipment (id, name, description, location, available) VALUES
		    (gen_random_uuid(), $1, 'Ceiling projector', 'Room 101', true)
		ON CONFLICT (name) DO NOTHING;
	`, DefaultEquipmentName)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO teachers (id, first_name, last_name, email) VALUES
		    (gen_random_uuid(), 'Default', 'Teacher', $1)
		ON CONFLICT (email) WHERE email IS NOT NULL DO NOTHING;
	`, DefaultTeacherEmail)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public' AND tablename <> 'schema_migrations'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil || len(tables) == 0 {
			truncateSQL.Store("")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
