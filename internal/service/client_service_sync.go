package service

import (
	"context"
	"errors"
	"fmt"
)

type clientSyncService struct {
	documentStore DocumentStore
}

// NewClientSyncService builds the sync round executor used by the
// background job.
func NewClientSyncService(documentStore DocumentStore) ClientSyncService {
	return &clientSyncService{documentStore: documentStore}
}

// FullSync pushes locally modified documents first, then pulls the server
// list so that the push results are reflected back. Push failures do not
// prevent the pull.
func (c *clientSyncService) FullSync(ctx context.Context) error {
	pushErr := c.documentStore.SyncDirty(ctx)
	pullErr := c.documentStore.FetchAllForUser(ctx)

	if err := errors.Join(pushErr, pullErr); err != nil {
		return fmt.Errorf("full sync: %w", err)
	}
	return nil
}
