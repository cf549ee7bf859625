package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/profile"
)

type ProfileHandler struct {
	profiles profile.Store
	timeout  time.Duration
}

func NewProfileHandler(profiles profile.Store, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		timeout:  timeout,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	p, err := h.profiles.Get(ctx, sessionID)
	if errors.Is(err, profile.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "no saved profile")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load profile")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var p domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if p.Email == "" {
		respondError(w, http.StatusBadRequest, "missing_email", "email is required")
		return
	}

	if err := h.profiles.Save(ctx, sessionID, &p); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save profile")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	if err := h.profiles.Delete(ctx, sessionID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
