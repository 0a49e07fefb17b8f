package store

import (
	"fmt"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/logger"
)

// ClientStorages groups the client-side storage backends into a single
// dependency container handed to the client service layer.
type ClientStorages struct {
	DocumentCache DocumentCache
}

// NewClientStorages opens the local SQLite cache described by cfg.
func NewClientStorages(cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	cache, err := NewDocumentCache(cfg.Cache.Path, log)
	if err != nil {
		return nil, fmt.Errorf("open document cache: %w", err)
	}

	return &ClientStorages{DocumentCache: cache}, nil
}
