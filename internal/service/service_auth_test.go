// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/store"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, user models.User) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, user)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func newTestAuthService(repo store.UserRepository) AuthService {
	cfg := config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-cv-builder",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, cfg, logger.Nop())
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	var persisted models.User
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			user.UserID = 1
			return user, nil
		},
	}

	svc := newTestAuthService(repo)
	got, err := svc.RegisterUser(context.Background(), models.User{Login: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Empty(t, persisted.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("secret")))
}

func TestRegisterUser_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "alice"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_LoginTaken(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrLoginAlreadyExists
		},
	}

	svc := newTestAuthService(repo)
	_, err := svc.RegisterUser(context.Background(), models.User{Login: "alice", Password: "secret"})

	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		findFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{UserID: 42, Login: "alice", PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestAuthService(repo)
	got, err := svc.Login(context.Background(), models.User{Login: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		findFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{Login: "alice", PasswordHash: string(hash)}, nil
		},
	}

	svc := newTestAuthService(repo)
	_, err = svc.Login(context.Background(), models.User{Login: "alice", Password: "not-secret"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UserNotFound(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), models.User{Login: "ghost", Password: "secret"})

	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 7})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)

	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestParseToken_WrongKey(t *testing.T) {
	issuing := newTestAuthService(&mockUserRepository{})
	token, err := issuing.CreateToken(context.Background(), models.User{UserID: 7})
	require.NoError(t, err)

	verifying := NewAuthService(&mockUserRepository{}, config.Auth{
		TokenSignKey:  "another-key",
		TokenIssuer:   "go-cv-builder",
		TokenDuration: time.Hour,
	}, logger.Nop())

	_, err = verifying.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	assert.True(t, errors.Is(err, ErrTokenIsExpiredOrInvalid))
}
