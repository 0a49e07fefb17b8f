package service

import (
	"github.com/avoronov/go-cv-builder/internal/adapter"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/store"
)

type ClientServices struct {
	AuthService   ClientAuthService
	DocumentStore DocumentStore
	SyncService   ClientSyncService
	SyncJob       ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, log *logger.Logger) *ClientServices {
	documentStore := NewDocumentStore(storages.DocumentCache, serverAdapter, log)
	syncSvc := NewClientSyncService(documentStore)

	return &ClientServices{
		AuthService:   NewClientAuthService(serverAdapter, documentStore, log),
		DocumentStore: documentStore,
		SyncService:   syncSvc,
		SyncJob:       NewClientSyncJob(syncSvc),
	}
}
