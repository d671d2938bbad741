package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saludcore/appointment-service/internal/application"
)

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req application.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.CreateAppointment(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusAccepted, resp)
}

func (h *Handler) getAppointments(w http.ResponseWriter, r *http.Request) {
	insuredID := chi.URLParam(r, "insuredId")
	if insuredID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "insuredId parameter is required")
		return
	}
	resp, err := h.service.GetAppointmentsByInsuredID(r.Context(), insuredID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
