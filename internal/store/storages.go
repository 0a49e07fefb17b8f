package store

import (
	"context"
	"fmt"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/logger"
)

// Storages groups all server-side repositories into a single dependency
// container handed to the service layer.
type Storages struct {
	UserRepository     UserRepository
	DocumentRepository DocumentRepository
}

// NewStorages connects to PostgreSQL and constructs every server-side
// repository.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		DocumentRepository: NewDocumentRepository(db, log),
	}, nil
}
