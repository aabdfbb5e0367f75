package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAttachmentRepository creates a GormAttachmentRepository with a mocked SQL connection
func newMockAttachmentRepository(t *testing.T) (*GormAttachmentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAttachmentRepository(gormDB), mock, mockDB
}

func TestGormAttachmentRepository_FindAllSearch(t *testing.T) {
	t.Run("lowers both sides of the name match", func(t *testing.T) {
		repo, mock, mockDB := newMockAttachmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "attachments" WHERE LOWER\(name\) LIKE \$1 ORDER BY created_at DESC`).
			WithArgs("%catálogo%").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uuid.New().String(), "Catálogo 2025"))

		attachments, err := repo.FindAll(context.Background(), nil, shared.ListFilter{Search: "Catálogo"})
		require.NoError(t, err)
		assert.Len(t, attachments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("combines active flag with search", func(t *testing.T) {
		repo, mock, mockDB := newMockAttachmentRepository(t)
		defer mockDB.Close()

		active := true
		mock.ExpectQuery(`SELECT \* FROM "attachments" WHERE is_active = \$1 AND LOWER\(name\) LIKE \$2 ORDER BY created_at DESC`).
			WithArgs(true, "%ficha%").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		attachments, err := repo.FindAll(context.Background(), &active, shared.ListFilter{Search: "Ficha"})
		require.NoError(t, err)
		assert.Empty(t, attachments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
