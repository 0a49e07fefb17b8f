// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/avoronov/go-cv-builder/internal/adapter"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/store"
	"github.com/avoronov/go-cv-builder/internal/utils"
	"github.com/avoronov/go-cv-builder/models"
)

const notificationBuffer = 16

// errNoChange is returned by a mutation callback to signal that the state
// was left exactly as it was. The no-op is reported as success without
// bumping UpdatedAt or rewriting the cache.
var errNoChange = errors.New("no change")

// documentStore is the concrete DocumentStore. All state sits behind a
// single mutex; every mutation ends with a write-through to the local
// cache while the lock is still held, so the cached order of snapshots
// always matches the order of in-memory transitions.
type documentStore struct {
	cache   store.DocumentCache
	adapter adapter.ServerAdapter
	uuid    *utils.UUIDGenerator
	logger  *logger.Logger

	mu         sync.RWMutex
	docs       []models.Document
	currentID  map[models.DocumentKind]string
	activeKind models.DocumentKind
	dirty      map[string]bool
	wizardStep int

	notifications chan Notification
	wg            sync.WaitGroup
}

// NewDocumentStore constructs the DocumentStore on top of the local cache
// and the server adapter. Call Restore before first use to load the
// previous session's state.
func NewDocumentStore(cache store.DocumentCache, serverAdapter adapter.ServerAdapter, log *logger.Logger) DocumentStore {
	return &documentStore{
		cache:         cache,
		adapter:       serverAdapter,
		uuid:          utils.NewUUIDGenerator(),
		logger:        log,
		currentID:     make(map[models.DocumentKind]string),
		dirty:         make(map[string]bool),
		activeKind:    models.KindCV,
		notifications: make(chan Notification, notificationBuffer),
	}
}

func (s *documentStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kind := range []models.DocumentKind{models.KindCV, models.KindCoverLetter} {
		docs, err := s.cache.GetAllDocuments(ctx, kind)
		if err != nil {
			return fmt.Errorf("restore %s documents from cache: %w", kind, err)
		}
		for i := range docs {
			s.upsertLocked(docs[i])
		}

		id, err := s.cache.GetCurrentDocumentID(ctx, kind)
		if err != nil {
			return fmt.Errorf("restore current %s pointer from cache: %w", kind, err)
		}
		if id != "" {
			s.currentID[kind] = id
		}
	}

	return nil
}

func (s *documentStore) CreateDocument(ctx context.Context, kind models.DocumentKind, title, templateID string) (string, error) {
	now := time.Now().UTC()
	doc := models.Document{
		ID:         s.uuid.Generate(),
		Kind:       kind,
		Title:      title,
		TemplateID: templateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch kind {
	case models.KindCV:
		doc.CV = &models.CVContent{}
	case models.KindCoverLetter:
		doc.Letter = &models.LetterContent{}
	default:
		return "", ErrUnknownDocumentKind
	}

	s.insertAsCurrent(ctx, doc)

	// The background push must not share content pointers with the list
	// entry, or a later edit under the lock races the in-flight upload.
	snapshot := doc.Clone()
	s.replicate(ctx, "create document", func(ctx context.Context) error {
		if _, err := s.adapter.CreateDocument(ctx, snapshot); err != nil {
			return err
		}
		s.clearDirty(snapshot.ID)
		return nil
	})

	return doc.ID, nil
}

func (s *documentStore) CreateFromImport(ctx context.Context, partial models.Document) (string, error) {
	doc := partial.Clone()

	if doc.Kind == "" {
		doc.Kind = models.KindCV
	}
	if doc.ID == "" {
		doc.ID = s.uuid.Generate()
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	switch doc.Kind {
	case models.KindCV:
		if doc.CV == nil {
			doc.CV = &models.CVContent{}
		}
		backfillCVItemIDs(s.uuid, doc.CV)
	case models.KindCoverLetter:
		if doc.Letter == nil {
			doc.Letter = &models.LetterContent{}
		}
	default:
		return "", ErrUnknownDocumentKind
	}

	s.insertAsCurrent(ctx, doc)

	snapshot := doc.Clone()
	s.replicate(ctx, "create imported document", func(ctx context.Context) error {
		if _, err := s.adapter.CreateDocument(ctx, snapshot); err != nil {
			return err
		}
		s.clearDirty(snapshot.ID)
		return nil
	})

	return doc.ID, nil
}

func (s *documentStore) LoadDocument(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return
	}

	kind := s.docs[idx].Kind
	s.currentID[kind] = id
	s.activeKind = kind
	s.wizardStep = 0

	if err := s.cache.SetCurrentDocumentID(ctx, kind, id); err != nil {
		s.logger.Err(err).Str("func", "LoadDocument").Str("id", id).Msg("persisting current pointer failed")
	}
}

func (s *documentStore) FetchDocument(ctx context.Context, id string) (*models.Document, error) {
	s.mu.RLock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		doc := s.docs[idx].Clone()
		s.mu.RUnlock()
		return &doc, nil
	}
	s.mu.RUnlock()

	remote, err := s.adapter.GetDocument(ctx, id)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "FetchDocument").Str("id", id).Msg("remote fetch failed")
		s.notify("could not fetch document from server")
		return nil, fmt.Errorf("fetch document %s: %w", id, err)
	}

	s.mu.Lock()
	s.upsertLocked(remote)
	s.currentID[remote.Kind] = remote.ID
	s.activeKind = remote.Kind
	s.wizardStep = 0
	s.writeThroughLocked(ctx, remote)
	if err = s.cache.SetCurrentDocumentID(ctx, remote.Kind, remote.ID); err != nil {
		s.logger.Err(err).Str("func", "FetchDocument").Str("id", id).Msg("persisting current pointer failed")
	}
	s.mu.Unlock()

	doc := remote.Clone()
	return &doc, nil
}

func (s *documentStore) FetchAllForUser(ctx context.Context) error {
	remote, err := s.adapter.ListDocuments(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "FetchAllForUser").Msg("remote list failed")
		s.notify("could not refresh documents from server")
		return fmt.Errorf("fetch documents: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	onServer := make(map[string]bool, len(remote))
	merged := make([]models.Document, 0, len(remote)+len(s.docs))
	for i := range remote {
		id := remote[i].ID
		onServer[id] = true

		// A document with unpushed local edits keeps its local state and
		// its dirty mark. The next sync retries the push; letting the
		// stale server copy win here would silently revert the edit.
		if idx := s.indexOfLocked(id); idx >= 0 && s.dirty[id] {
			merged = append(merged, s.docs[idx])
			continue
		}

		merged = append(merged, remote[i])
		s.writeThroughLocked(ctx, remote[i])
	}

	// Local-only documents survive the refresh: an unsynced creation must
	// not disappear just because the server has not seen it yet.
	for i := range s.docs {
		if !onServer[s.docs[i].ID] {
			merged = append(merged, s.docs[i])
		}
	}
	s.docs = merged

	return nil
}

func (s *documentStore) Current(kind models.DocumentKind) *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := s.currentID[kind]
	if id == "" {
		return nil
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil
	}

	doc := s.docs[idx].Clone()
	return &doc
}

func (s *documentStore) Documents(kind models.DocumentKind) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, 0, len(s.docs))
	for i := range s.docs {
		if s.docs[i].Kind == kind {
			out = append(out, s.docs[i].Clone())
		}
	}
	return out
}

func (s *documentStore) WizardStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wizardStep
}

func (s *documentStore) SetWizardStep(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step < 0 {
		step = 0
	}
	s.wizardStep = step
}

func (s *documentStore) UpdateTitle(ctx context.Context, title string) error {
	s.mu.RLock()
	kind := s.activeKind
	s.mu.RUnlock()

	return s.mutateCurrent(ctx, kind, func(doc *models.Document) error {
		doc.Title = title
		return nil
	})
}

func (s *documentStore) UpdatePersonalInfo(ctx context.Context, patch models.PersonalInfo) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergo.Merge(&doc.CV.PersonalInfo, patch, mergo.WithOverride)
	})
}

func (s *documentStore) UpdateFooter(ctx context.Context, patch models.Footer) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergo.Merge(&doc.CV.Footer, patch, mergo.WithOverride)
	})
}

func (s *documentStore) UpdateStyle(ctx context.Context, patch models.Style) error {
	s.mu.RLock()
	kind := s.activeKind
	s.mu.RUnlock()

	return s.mutateCurrent(ctx, kind, func(doc *models.Document) error {
		return mergo.Merge(&doc.Style, patch, mergo.WithOverride)
	})
}

func (s *documentStore) UpdateSectionOrder(ctx context.Context, order []string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.SectionOrder = append([]string(nil), order...)
		return nil
	})
}

func (s *documentStore) UpdateDivers(ctx context.Context, text string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Divers = text
		return nil
	})
}

func (s *documentStore) UpdateLetter(ctx context.Context, patch models.LetterContent) error {
	return s.mutateCurrent(ctx, models.KindCoverLetter, func(doc *models.Document) error {
		return mergo.Merge(doc.Letter, patch, mergo.WithOverride)
	})
}

func (s *documentStore) PersistCurrent(ctx context.Context, kind models.DocumentKind) error {
	current := s.Current(kind)
	if current == nil {
		return ErrNoCurrentDocument
	}

	if err := s.push(ctx, *current); err != nil {
		s.logger.Err(err).Str("func", "PersistCurrent").Str("id", current.ID).Msg("push failed")
		s.notify("could not save document to server")
		return err
	}

	s.clearDirty(current.ID)
	return nil
}

func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	kind := s.docs[idx].Kind
	s.docs = append(s.docs[:idx], s.docs[idx+1:]...)
	delete(s.dirty, id)

	if s.currentID[kind] == id {
		delete(s.currentID, kind)
		if err := s.cache.SetCurrentDocumentID(ctx, kind, ""); err != nil {
			s.logger.Err(err).Str("func", "DeleteDocument").Str("id", id).Msg("clearing current pointer failed")
		}
	}
	if err := s.cache.DeleteDocument(ctx, id); err != nil {
		s.logger.Err(err).Str("func", "DeleteDocument").Str("id", id).Msg("cache delete failed")
	}
	s.mu.Unlock()

	s.replicate(ctx, "delete document", func(ctx context.Context) error {
		err := s.adapter.DeleteDocument(ctx, id)
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		return err
	})

	return nil
}

func (s *documentStore) IncrementViewCounter(ctx context.Context, id string) error {
	if err := s.mutateByID(ctx, id, func(doc *models.Document) error {
		doc.Views++
		return nil
	}); err != nil {
		return err
	}

	s.replicate(ctx, "increment view counter", func(ctx context.Context) error {
		return s.adapter.IncrementViews(ctx, id)
	})

	return nil
}

func (s *documentStore) ToggleVisibility(ctx context.Context, id string) error {
	var public bool
	if err := s.mutateByID(ctx, id, func(doc *models.Document) error {
		doc.Public = !doc.Public
		public = doc.Public
		return nil
	}); err != nil {
		return err
	}

	s.replicate(ctx, "toggle visibility", func(ctx context.Context) error {
		return s.adapter.SetVisibility(ctx, id, public)
	})

	return nil
}

func (s *documentStore) SyncDirty(ctx context.Context) error {
	s.mu.RLock()
	pending := make([]models.Document, 0, len(s.dirty))
	for i := range s.docs {
		if s.dirty[s.docs[i].ID] {
			pending = append(pending, s.docs[i].Clone())
		}
	}
	s.mu.RUnlock()

	var errs []error
	for i := range pending {
		if err := s.push(ctx, pending[i]); err != nil {
			s.logger.Err(err).Str("func", "SyncDirty").Str("id", pending[i].ID).Msg("push failed")
			errs = append(errs, fmt.Errorf("sync document %s: %w", pending[i].ID, err))
			continue
		}
		s.clearDirty(pending[i].ID)
	}

	if len(errs) > 0 {
		s.notify("some documents could not be synced")
	}
	return errors.Join(errs...)
}

func (s *documentStore) Notifications() <-chan Notification {
	return s.notifications
}

func (s *documentStore) Wait() {
	s.wg.Wait()
}

// push sends the full document state to the server: update first, create
// when the server authoritatively reports the row absent.
func (s *documentStore) push(ctx context.Context, doc models.Document) error {
	_, err := s.adapter.UpdateDocument(ctx, doc)
	if errors.Is(err, adapter.ErrNotFound) {
		_, err = s.adapter.CreateDocument(ctx, doc)
	}
	return err
}

// insertAsCurrent commits a freshly built document: into the list, as the
// current one of its kind, marked dirty, written through to the cache.
func (s *documentStore) insertAsCurrent(ctx context.Context, doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertLocked(doc)
	s.currentID[doc.Kind] = doc.ID
	s.activeKind = doc.Kind
	s.wizardStep = 0
	s.dirty[doc.ID] = true
	s.writeThroughLocked(ctx, doc)

	if err := s.cache.SetCurrentDocumentID(ctx, doc.Kind, doc.ID); err != nil {
		s.logger.Err(err).Str("func", "insertAsCurrent").Str("id", doc.ID).Msg("persisting current pointer failed")
	}
}

// mutateCurrent applies fn to the current document of the given kind as one
// atomic state transition: the list entry, the current pointer target and
// the cached snapshot all change together under the lock.
func (s *documentStore) mutateCurrent(ctx context.Context, kind models.DocumentKind, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.currentID[kind]
	if id == "" {
		return ErrNoCurrentDocument
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return ErrNoCurrentDocument
	}

	return s.applyLocked(ctx, idx, fn)
}

// mutateByID is mutateCurrent for documents addressed directly, used by the
// share-metadata mutators.
func (s *documentStore) mutateByID(ctx context.Context, id string, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return store.ErrDocumentNotFound
	}

	return s.applyLocked(ctx, idx, fn)
}

func (s *documentStore) applyLocked(ctx context.Context, idx int, fn func(doc *models.Document) error) error {
	doc := &s.docs[idx]
	if err := fn(doc); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}

	doc.UpdatedAt = time.Now().UTC()
	s.dirty[doc.ID] = true
	s.writeThroughLocked(ctx, *doc)
	return nil
}

// writeThroughLocked persists the snapshot to the local cache. A cache
// failure is logged and notified but never fails the mutation: the
// in-memory state remains the source of truth for this session.
func (s *documentStore) writeThroughLocked(ctx context.Context, doc models.Document) {
	if err := s.cache.SaveDocument(ctx, doc); err != nil {
		s.logger.Err(err).Str("func", "writeThroughLocked").Str("id", doc.ID).Msg("cache write failed")
		s.notify("could not persist document locally")
	}
}

func (s *documentStore) upsertLocked(doc models.Document) {
	if idx := s.indexOfLocked(doc.ID); idx >= 0 {
		s.docs[idx] = doc
		return
	}
	s.docs = append(s.docs, doc)
}

func (s *documentStore) indexOfLocked(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *documentStore) clearDirty(id string) {
	s.mu.Lock()
	delete(s.dirty, id)
	s.mu.Unlock()
}

// replicate runs a best-effort remote call in the background. The call is
// detached from the caller's cancellation so that navigating away does not
// abort an in-flight push; failures are logged and notified, never
// propagated.
func (s *documentStore) replicate(ctx context.Context, op string, call func(ctx context.Context) error) {
	bgCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := call(bgCtx); err != nil {
			s.logger.Err(err).Str("op", op).Msg("background replication failed")
			s.notify(op + " could not reach the server")
		}
	}()
}

func (s *documentStore) notify(text string) {
	select {
	case s.notifications <- Notification{Text: text, Time: time.Now()}:
	default:
	}
}

func backfillCVItemIDs(gen *utils.UUIDGenerator, cv *models.CVContent) {
	backfillItemIDs[models.Experience](gen, cv.Experiences)
	backfillItemIDs[models.Education](gen, cv.Educations)
	backfillItemIDs[models.Skill](gen, cv.Skills)
	backfillItemIDs[models.Language](gen, cv.Languages)
	backfillItemIDs[models.Hobby](gen, cv.Hobbies)
	backfillItemIDs[models.Certification](gen, cv.Certifications)
	backfillItemIDs[models.Project](gen, cv.Projects)
	backfillItemIDs[models.Reference](gen, cv.References)
	backfillItemIDs[models.Quality](gen, cv.Qualities)
	backfillItemIDs[models.SocialLink](gen, cv.SocialLinks)
}
