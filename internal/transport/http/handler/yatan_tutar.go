package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nakliye-kontrol-api/internal/application/deposit"
	"github.com/nakliye-kontrol-api/internal/domain"
	"github.com/nakliye-kontrol-api/internal/pkg/validate"
)

// YatanTutarHandler handles the deposit ledger endpoints.
type YatanTutarHandler struct {
	svc deposit.Service
}

func NewYatanTutarHandler(svc deposit.Service) *YatanTutarHandler {
	return &YatanTutarHandler{svc: svc}
}

func (h *YatanTutarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateYatanTutarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "geçersiz istek gövdesi")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *YatanTutarHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	recs, err := h.svc.List(r.Context(), skip, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *YatanTutarHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *YatanTutarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateYatanTutarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "geçersiz istek gövdesi")
		return
	}
	rec, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *YatanTutarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "yatan tutar kaydı başarıyla silindi"})
}
