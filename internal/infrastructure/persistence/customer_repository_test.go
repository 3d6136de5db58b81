package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a gorm DB backed by a mocked SQL connection, configured
// the same way as the production connection (translated constraint errors,
// no implicit per-statement transactions).
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCustomerRepository_GetByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "email", "is_guest"}).
			AddRow(customerID, "Ada Lovelace", "ada@example.com", false)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE "addresses"\."customer_id" = \$1`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		customer, err := repo.GetByID(context.Background(), nil, customerID)

		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "ada@example.com", customer.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates missing row to not-found", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WithArgs(customerID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		customer, err := repo.GetByID(context.Background(), nil, customerID)

		assert.Nil(t, customer)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormCustomerRepository_Create(t *testing.T) {
	t.Run("opens and commits its own transaction when none is supplied", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormCustomerRepository(db)

		customer, err := commerce.NewCustomer("Ada Lovelace", "ada@example.com")
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "customers"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), nil, customer))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("joins a supplied transaction without committing it", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormCustomerRepository(db)

		customer, err := commerce.NewCustomer("Ada Lovelace", "ada@example.com")
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "customers"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		// No commit expected: the opener owns the boundary.

		tx := db.Begin()
		require.NoError(t, tx.Error)
		require.NoError(t, repo.Create(context.Background(), tx, customer))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid input before touching the database", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()
		repo := NewGormCustomerRepository(db)

		err := repo.Create(context.Background(), nil, &commerce.Customer{})

		assert.True(t, shared.IsValidation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
