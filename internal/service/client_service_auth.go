package service

import (
	"context"
	"fmt"

	"github.com/avoronov/go-cv-builder/internal/adapter"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
)

type clientAuthService struct {
	adapter       adapter.ServerAdapter
	documentStore DocumentStore
	logger        *logger.Logger
}

// NewClientAuthService wires registration and login to the server adapter.
// A successful login refreshes the document list so server-side documents
// become visible immediately.
func NewClientAuthService(serverAdapter adapter.ServerAdapter, documentStore DocumentStore, log *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, documentStore: documentStore, logger: log}
}

func (a *clientAuthService) Register(ctx context.Context, login, name, password string) error {
	if login == "" || password == "" {
		return ErrInvalidDataProvided
	}

	user := models.User{Login: login, Name: name, Password: password}
	if _, err := a.adapter.Register(ctx, user); err != nil {
		a.logger.Err(err).Str("func", "Register").Str("login", login).Msg("registration failed")
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return ErrInvalidDataProvided
	}

	user := models.User{Login: login, Password: password}
	if _, err := a.adapter.Login(ctx, user); err != nil {
		a.logger.Err(err).Str("func", "Login").Str("login", login).Msg("login failed")
		return fmt.Errorf("login: %w", err)
	}

	// Refresh is best-effort: a freshly logged-in user on a flaky network
	// still gets their locally cached documents.
	if err := a.documentStore.FetchAllForUser(ctx); err != nil {
		a.logger.Err(err).Str("func", "Login").Msg("post-login refresh failed")
	}

	return nil
}
