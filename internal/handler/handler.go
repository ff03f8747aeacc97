// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the wizard and service layers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creativecommunity/registration/internal/model"
	"github.com/creativecommunity/registration/internal/repository"
	"github.com/creativecommunity/registration/internal/service"
	"github.com/creativecommunity/registration/internal/wizard"
)

// RegistrationHandler holds all HTTP handlers for the registration API.
type RegistrationHandler struct {
	sessions *wizard.Sessions
	svc      *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(sessions *wizard.Sessions, svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{sessions: sessions, svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *RegistrationHandler) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

// ─── Wizard session handlers ──────────────────────────────────────────────────

// CreateSession handles POST /sessions
// Opens a new wizard session positioned on the first step.
func (h *RegistrationHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create()
	writeJSON(w, http.StatusCreated, sess.State())
}

// GetSession handles GET /sessions/{id}
func (h *RegistrationHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// DeleteSession handles DELETE /sessions/{id}
// Abandons an in-progress registration; the draft is discarded.
func (h *RegistrationHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// SetField handles PUT /sessions/{id}/fields
// Overwrites one scalar draft field and clears its validation error.
func (h *RegistrationHandler) SetField(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.SetFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := sess.SetField(req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, wizard.ErrBusy):
			writeError(w, http.StatusConflict, "mobile number is being checked, please wait")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// Toggle handles PUT /sessions/{id}/selections
// Adds or removes one option in a multi-select field.
func (h *RegistrationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req model.ToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := sess.Toggle(req.Field, req.Option, req.Selected); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// nextResponse is the success payload for Next.
type nextResponse struct {
	Step         int                 `json:"step"`
	Submitted    bool                `json:"submitted"`
	Registration *model.Registration `json:"registration,omitempty"`
}

// Next handles POST /sessions/{id}/next
// Validates the current step and advances, or submits from the last step.
func (h *RegistrationHandler) Next(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	result, err := sess.Next(r.Context())
	if err != nil {
		var vErr *wizard.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
				Error:       vErr.First,
				FieldErrors: vErr.Fields,
			})
		case errors.Is(err, wizard.ErrBusy):
			writeError(w, http.StatusConflict, "validation already in progress")
		case errors.Is(err, wizard.ErrCheckUnavailable):
			writeError(w, http.StatusBadGateway, wizard.ErrCheckUnavailable.Error())
		case errors.Is(err, repository.ErrDuplicateMobile):
			writeError(w, http.StatusConflict, repository.ErrDuplicateMobile.Error())
		default:
			// Submission failure: surface the underlying message and keep
			// the session open so the user can retry.
			writeError(w, http.StatusInternalServerError, "Registration failed: "+err.Error())
		}
		return
	}

	if result.Submitted {
		h.sessions.Delete(sess.ID())
	}
	writeJSON(w, http.StatusOK, nextResponse{
		Step:         result.Step,
		Submitted:    result.Submitted,
		Registration: result.Registration,
	})
}

// Previous handles POST /sessions/{id}/previous
// Moves one step back without validation; a no-op on the first step.
func (h *RegistrationHandler) Previous(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Previous()
	writeJSON(w, http.StatusOK, sess.State())
}

// ─── Admin handlers ───────────────────────────────────────────────────────────

// ListRegistrations handles GET /registrations[?group=Name]
// Returns registrations newest first, optionally narrowed to one group.
func (h *RegistrationHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.List(r.Context(), r.URL.Query().Get("group"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// CountRegistrations handles GET /registrations/count
func (h *RegistrationHandler) CountRegistrations(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count registrations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// DeleteRegistration handles DELETE /registrations/{id}
func (h *RegistrationHandler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete registration")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllRegistrations handles DELETE /registrations
func (h *RegistrationHandler) DeleteAllRegistrations(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete registrations")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
