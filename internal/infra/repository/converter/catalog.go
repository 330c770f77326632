package converter

import (
	"school-reservations/internal/domain/equipment"
	"school-reservations/internal/domain/teacher"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func EquipmentToInfra(e *equipment.Equipment) pgsql.CreateEquipmentParams {
	return pgsql.CreateEquipmentParams{
		ID:          e.ID(),
		Name:        e.Name(),
		Description: pgconv.TextOrNull(e.Description()),
		Location:    pgconv.TextOrNull(e.Location()),
		Available:   e.IsAvailable(),
		CreatedAt:   pgconv.TimeToPgtype(e.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(e.UpdatedAt()),
	}
}

func EquipmentToUpdateParams(e *equipment.Equipment) pgsql.UpdateEquipmentParams {
	return pgsql.UpdateEquipmentParams{
		ID:          e.ID(),
		Name:        e.Name(),
		Description: pgconv.TextOrNull(e.Description()),
		Location:    pgconv.TextOrNull(e.Location()),
		Available:   e.IsAvailable(),
		UpdatedAt:   pgconv.TimeToPgtype(e.UpdatedAt()),
	}
}

func TeacherToInfra(t *teacher.Teacher) pgsql.CreateTeacherParams {
	return pgsql.CreateTeacherParams{
		ID:        t.ID(),
		FirstName: t.FirstName(),
		LastName:  t.LastName(),
		Email:     teacherEmail(t),
		Course:    pgconv.TextOrNull(t.Course()),
		Subject:   pgconv.TextOrNull(t.Subject()),
		CreatedAt: pgconv.TimeToPgtype(t.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(t.UpdatedAt()),
	}
}

func TeacherToUpdateParams(t *teacher.Teacher) pgsql.UpdateTeacherParams {
	return pgsql.UpdateTeacherParams{
		ID:        t.ID(),
		FirstName: t.FirstName(),
		LastName:  t.LastName(),
		Email:     teacherEmail(t),
		Course:    pgconv.TextOrNull(t.Course()),
		Subject:   pgconv.TextOrNull(t.Subject()),
		UpdatedAt: pgconv.TimeToPgtype(t.UpdatedAt()),
	}
}

func teacherEmail(t *teacher.Teacher) pgtype.Text {
	if t.Email() == nil {
		return pgtype.Text{}
	}
	return pgconv.StringToPgtype(t.Email().Value())
}
