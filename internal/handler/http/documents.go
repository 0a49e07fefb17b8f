package http

import (
	"encoding/json"
	"net/http"

	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/utils"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listDocuments").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	docs, err := h.services.DocumentService.GetAllDocuments(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDocuments").Msg("error getting user documents")
		http.Error(w, "error getting user documents", statusFromError(err))
		return
	}

	if docs == nil {
		docs = []models.Document{}
	}

	utils.WriteJSON(w, docs, http.StatusOK)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getDocument").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")

	doc, err := h.services.DocumentService.GetDocument(ctx, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDocument").Str("document_id", id).Msg("error getting document")
		http.Error(w, "error getting document", statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createDocument").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Str("func", "*Handler.createDocument").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	saved, err := h.services.DocumentService.SaveDocument(ctx, userID, doc)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createDocument").Msg("error saving document")
		http.Error(w, "error saving document", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) updateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updateDocument").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Str("func", "*Handler.updateDocument").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the path segment is authoritative for the document identity
	doc.ID = chi.URLParam(r, "id")

	saved, err := h.services.DocumentService.UpdateDocument(ctx, userID, doc)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateDocument").Str("document_id", doc.ID).Msg("error updating document")
		http.Error(w, "error updating document", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteDocument").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.services.DocumentService.DeleteDocument(ctx, userID, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteDocument").Str("document_id", id).Msg("error deleting document")
		http.Error(w, "error deleting document", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) incrementViews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.incrementViews").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")

	views, err := h.services.DocumentService.IncrementViews(ctx, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.incrementViews").Str("document_id", id).Msg("error incrementing views")
		http.Error(w, "error incrementing views", statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]int{"views": views}, http.StatusOK)
}

type visibilityRequest struct {
	Public bool `json:"public"`
}

func (h *Handler) setVisibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.setVisibility").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")

	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setVisibility").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DocumentService.SetVisibility(ctx, userID, id, req.Public); err != nil {
		log.Err(err).Str("func", "*Handler.setVisibility").Str("document_id", id).Msg("error setting visibility")
		http.Error(w, "error setting visibility", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
