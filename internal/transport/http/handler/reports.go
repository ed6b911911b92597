package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nakliye-kontrol-api/internal/application/report"
)

// ReportHandler handles PDF report and backup generation plus the one-shot
// temp downloads they point at.
type ReportHandler struct {
	svc report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req report.GeneratePDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "geçersiz istek gövdesi")
		return
	}
	file, err := h.svc.GeneratePDF(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func (h *ReportHandler) GenerateBackup(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.GenerateBackup(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func (h *ReportHandler) DownloadTemp(w http.ResponseWriter, r *http.Request) {
	data, tf, err := h.svc.Download(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", tf.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tf.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
