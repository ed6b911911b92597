package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nakliye-kontrol-api/internal/application/shipment"
	"github.com/nakliye-kontrol-api/internal/domain"
	"github.com/nakliye-kontrol-api/internal/pkg/validate"
)

// NakliyeHandler handles the shipment ledger endpoints.
type NakliyeHandler struct {
	svc shipment.Service
}

func NewNakliyeHandler(svc shipment.Service) *NakliyeHandler {
	return &NakliyeHandler{svc: svc}
}

func (h *NakliyeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNakliyeRequest
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

func (h *NakliyeHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	recs, err := h.svc.List(r.Context(), skip, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *NakliyeHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *NakliyeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateNakliyeRequest
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

func (h *NakliyeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "nakliye kaydı başarıyla silindi"})
}

func (h *NakliyeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(chi.URLParam(r, "query"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "arama sorgusu boş olamaz")
		return
	}
	skip, limit := pagination(r)
	recs, err := h.svc.Search(r.Context(), q, skip, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// pagination reads skip/limit query parameters; the services clamp the
// values to their own defaults and caps.
func pagination(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return skip, limit
}
