package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockUserRepository(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewUserRepository(gormDB), mock
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := setupMockUserRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	repo, mock := setupMockUserRepository(t)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "is_active"}).
		AddRow(1, "alice@example.com", "Alice Smith", true)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("alice@example.com", 1).
		WillReturnRows(rows)

	user, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock := setupMockUserRepository(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err = repo.ExistsByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
