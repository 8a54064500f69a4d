package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
	"github.com/Shivanand-hulikatti/association-registrations/internal/service"
)

// RegistrationHandler holds the HTTP handlers for event registrations.
type RegistrationHandler struct {
	events *service.EventService
	regs   *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(events *service.EventService, regs *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{events: events, regs: regs}
}

// actor loads the event named by the {id} parameter and classifies the caller
// against its owner. It writes the error response itself.
func (h *RegistrationHandler) actor(w http.ResponseWriter, r *http.Request) (auth.Actor, uuid.UUID, bool) {
	eventID, ok := uuidParam(w, r, "id")
	if !ok {
		return auth.Actor{}, uuid.Nil, false
	}
	session := auth.FromContext(r.Context())
	event, err := h.events.GetEvent(r.Context(), session, eventID)
	if err != nil {
		writeError(w, r, err)
		return auth.Actor{}, uuid.Nil, false
	}
	return auth.Classify(session, event.Owner), eventID, true
}

// List handles GET /events/{id}/registrations
// Privileged callers get full registrations; eligible members get names only.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, eventID, ok := h.actor(w, r)
	if !ok {
		return
	}

	list, err := h.regs.List(r.Context(), actor, eventID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if list.Detailed != nil {
		writeJSON(w, http.StatusOK, list.Detailed)
		return
	}
	writeJSON(w, http.StatusOK, list.Names)
}

// Create handles POST /events/{id}/registrations
// A missing user_id signs up an anonymous participant by name.
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, eventID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req model.NewRegistration
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.regs.Create(r.Context(), actor, eventID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

// Get handles GET /events/{id}/registrations/{registrationID}
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, eventID, ok := h.actor(w, r)
	if !ok {
		return
	}
	regID, ok := uuidParam(w, r, "registrationID")
	if !ok {
		return
	}

	reg, err := h.regs.Get(r.Context(), actor, eventID, regID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reg)
}

// Update handles PUT /events/{id}/registrations/{registrationID}
func (h *RegistrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, eventID, ok := h.actor(w, r)
	if !ok {
		return
	}
	regID, ok := uuidParam(w, r, "registrationID")
	if !ok {
		return
	}

	var req model.NewRegistration
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.regs.Update(r.Context(), actor, eventID, regID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reg)
}

// Delete handles DELETE /events/{id}/registrations/{registrationID}
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, eventID, ok := h.actor(w, r)
	if !ok {
		return
	}
	regID, ok := uuidParam(w, r, "registrationID")
	if !ok {
		return
	}

	if err := h.regs.Delete(r.Context(), actor, eventID, regID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListForUser handles GET /users/{id}/registrations
func (h *RegistrationHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	actor := auth.ClassifyGlobal(auth.FromContext(r.Context()))
	regs, err := h.regs.ListForUser(r.Context(), actor, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, regs)
}
