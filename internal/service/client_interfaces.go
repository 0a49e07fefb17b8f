// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"time"

	"github.com/avoronov/go-cv-builder/models"
)

// Notification is a non-blocking, user-visible message emitted by the
// document store when a best-effort remote call fails. The UI renders it as
// a toast; it never interrupts or rolls back a local mutation.
type Notification struct {
	Text string
	Time time.Time
}

// DocumentStore is the single source of truth for the document currently
// being edited and for the list of all documents known to the user. It is
// the only component allowed to mutate document state.
//
// Every mutation is applied to the in-memory state first, written through
// to the local cache before the method returns, and replicated to the
// server on a best-effort basis. Remote failures are logged and surfaced
// via Notifications; they never fail the local mutation and never roll it
// back. Absence reported by the server (a 404) is authoritative and is
// distinguished from transient errors, which leave local state untouched.
type DocumentStore interface {
	// Restore loads the cached documents and current-document pointers
	// from the local cache into memory. Called once at startup so that
	// offline edits from a previous session are visible immediately.
	Restore(ctx context.Context) error

	// CreateDocument mints an identifier, builds a default skeleton of the
	// given kind, inserts it into the list, makes it current, and mirrors
	// it to the server in the background. Never fails on remote errors.
	CreateDocument(ctx context.Context, kind models.DocumentKind, title, templateID string) (string, error)

	// CreateFromImport is CreateDocument seeded from an externally
	// supplied partial payload, e.g. AI-extracted CV data. Every
	// sub-entity item lacking an identifier gets a fresh one before the
	// document enters the list.
	CreateFromImport(ctx context.Context, partial models.Document) (string, error)

	// LoadDocument makes the named document current if it is present in
	// the list, and resets the editor wizard to its first step. Unknown
	// IDs are a no-op.
	LoadDocument(ctx context.Context, id string)

	// FetchDocument returns the document by ID: from the local list when
	// present, otherwise from the server (inserting the result into the
	// list and making it current). A nil document with a nil error means
	// the server authoritatively reported the document absent.
	FetchDocument(ctx context.Context, id string) (*models.Document, error)

	// FetchAllForUser refreshes the list from the server. A server copy
	// replaces the local copy with the same ID; local documents absent
	// from the server response survive untouched.
	FetchAllForUser(ctx context.Context) error

	// Current returns a copy of the current document of the given kind,
	// or nil when none is selected.
	Current(kind models.DocumentKind) *models.Document

	// Documents returns a copy of the list filtered by kind.
	Documents(kind models.DocumentKind) []models.Document

	// WizardStep returns the active editor step. SetWizardStep moves it.
	WizardStep() int
	SetWizardStep(step int)

	// Scalar field-group mutators. Each applies a shallow merge to the
	// current document of the relevant kind, bumps UpdatedAt, and commits
	// the result to the list and the cache in one state transition.
	UpdateTitle(ctx context.Context, title string) error
	UpdatePersonalInfo(ctx context.Context, patch models.PersonalInfo) error
	UpdateFooter(ctx context.Context, patch models.Footer) error
	UpdateStyle(ctx context.Context, patch models.Style) error
	UpdateSectionOrder(ctx context.Context, order []string) error
	UpdateDivers(ctx context.Context, text string) error
	UpdateLetter(ctx context.Context, patch models.LetterContent) error

	// Sub-entity collection mutators on the current CV. Add mints a fresh
	// identifier and returns it. Update shallow-merges the given fields
	// into the record with the given ID; an unknown ID is a no-op. Remove
	// filters the record out and is idempotent.
	AddExperience(ctx context.Context, item models.Experience) (string, error)
	UpdateExperience(ctx context.Context, id string, patch models.Experience) error
	RemoveExperience(ctx context.Context, id string) error

	AddEducation(ctx context.Context, item models.Education) (string, error)
	UpdateEducation(ctx context.Context, id string, patch models.Education) error
	RemoveEducation(ctx context.Context, id string) error

	AddSkill(ctx context.Context, item models.Skill) (string, error)
	UpdateSkill(ctx context.Context, id string, patch models.Skill) error
	RemoveSkill(ctx context.Context, id string) error

	AddLanguage(ctx context.Context, item models.Language) (string, error)
	UpdateLanguage(ctx context.Context, id string, patch models.Language) error
	RemoveLanguage(ctx context.Context, id string) error

	AddHobby(ctx context.Context, item models.Hobby) (string, error)
	UpdateHobby(ctx context.Context, id string, patch models.Hobby) error
	RemoveHobby(ctx context.Context, id string) error

	AddCertification(ctx context.Context, item models.Certification) (string, error)
	UpdateCertification(ctx context.Context, id string, patch models.Certification) error
	RemoveCertification(ctx context.Context, id string) error

	AddProject(ctx context.Context, item models.Project) (string, error)
	UpdateProject(ctx context.Context, id string, patch models.Project) error
	RemoveProject(ctx context.Context, id string) error

	AddReference(ctx context.Context, item models.Reference) (string, error)
	UpdateReference(ctx context.Context, id string, patch models.Reference) error
	RemoveReference(ctx context.Context, id string) error

	AddQuality(ctx context.Context, item models.Quality) (string, error)
	UpdateQuality(ctx context.Context, id string, patch models.Quality) error
	RemoveQuality(ctx context.Context, id string) error

	AddSocialLink(ctx context.Context, item models.SocialLink) (string, error)
	UpdateSocialLink(ctx context.Context, id string, patch models.SocialLink) error
	RemoveSocialLink(ctx context.Context, id string) error

	// PersistCurrent synchronously pushes the current document of the
	// given kind to the server: update first, create when the server
	// reports the document absent. Failure is notified, local state is
	// never reverted.
	PersistCurrent(ctx context.Context, kind models.DocumentKind) error

	// DeleteDocument removes the document from the list and the cache
	// immediately, clears the current pointer when it was current, then
	// issues a best-effort remote delete in the background.
	DeleteDocument(ctx context.Context, id string) error

	// IncrementViewCounter and ToggleVisibility mutate CV share metadata
	// with the same optimistic local-first discipline.
	IncrementViewCounter(ctx context.Context, id string) error
	ToggleVisibility(ctx context.Context, id string) error

	// SyncDirty pushes every document mutated since its last successful
	// push. Used by the background sync job.
	SyncDirty(ctx context.Context) error

	// Notifications exposes the toast stream. The channel is buffered and
	// never blocks a mutation; messages are dropped when the UI lags.
	Notifications() <-chan Notification

	// Wait blocks until all in-flight background replication goroutines
	// have settled. Called on shutdown.
	Wait()
}

// ClientAuthService handles account registration and login against the
// server and refreshes the document list after a successful login.
type ClientAuthService interface {
	Register(ctx context.Context, login, name, password string) error
	Login(ctx context.Context, login, password string) error
}

// ClientSyncService performs one full synchronisation round: push dirty
// local documents, then pull and reconcile the server list.
type ClientSyncService interface {
	FullSync(ctx context.Context) error
}

// ClientSyncJob is a background worker that periodically runs a full sync.
type ClientSyncJob interface {
	// Start launches the background goroutine syncing every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has.
	Stop()
}
