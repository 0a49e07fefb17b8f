package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop(), errorClassificator: NewPostgresErrorClassifier()}
	return NewUserRepository(db, logger.Nop()), mock
}

func TestUserRepository_CreateUser_Success(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jane", "bcrypt-hash", "Jane Doe").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "login", "password_hash", "name", "created_at"}).
			AddRow(int64(7), "jane", "bcrypt-hash", "Jane Doe", now))

	user, err := repo.CreateUser(context.Background(), models.User{
		Login: "jane", PasswordHash: "bcrypt-hash", Name: "Jane Doe",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, user.UserID)
	assert.Equal(t, "jane", user.Login)
}

func TestUserRepository_CreateUser_DuplicateLogin(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), models.User{Login: "jane"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestUserRepository_FindUserByLogin_NotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByLogin(context.Background(), models.User{Login: "ghost"})
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestClassifyPgError(t *testing.T) {
	assert.Equal(t, Retryable, ClassifyPgError(&pgconn.PgError{Code: "40P01"}))
	assert.Equal(t, Retryable, ClassifyPgError(&pgconn.PgError{Code: "08006"}))
	assert.Equal(t, NonRetryable, ClassifyPgError(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, NonRetryable, ClassifyPgError(&pgconn.PgError{Code: "42703"}))
}
