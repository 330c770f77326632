//go:build e2e

package migration_test

import (
	"os"
	"testing"

	"school-reservations/internal/infra/db"
	"school-reservations/tests/common/dbtest"
	"school-reservations/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type migrationSuite struct {
	e2e.SharedSuite
}

func TestMigrationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(migrationSuite))
}

func (s *migrationSuite) TestMigrate() {
	s.Run("適用済みのマイグレーションは再実行されない", func() {
		applied, err := db.Migrate(s.T().Context(), s.DB, os.DirFS("../../../migrations"))

		s.Require().NoError(err)
		s.Empty(applied)
	})

	s.Run("バージョン履歴がリセット後も残る", func() {
		n := dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM schema_migrations")

		s.Positive(n)
	})

	s.Run("ディレクトリが空なら何もしない", func() {
		applied, err := db.Migrate(s.T().Context(), s.DB, os.DirFS(s.T().TempDir()))

		s.Require().NoError(err)
		s.Empty(applied)
	})
}
