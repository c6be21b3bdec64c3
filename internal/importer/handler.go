package importer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Handler serves the spreadsheet upload endpoint.
type Handler struct {
	maxUploadBytes int64
}

func NewHandler(maxUploadBytes int64) *Handler {
	return &Handler{maxUploadBytes: maxUploadBytes}
}

// ImportResponse wraps the chart options derived from an upload.
type ImportResponse struct {
	Options  interface{} `json:"options"`
	Filename string      `json:"filename"`
}

// Upload handles POST /import/xlsx (multipart form with "file" field).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		http.Error(w, "only .xlsx workbooks are supported", http.StatusBadRequest)
		return
	}

	opts, err := FromXLSX(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Info("spreadsheet imported", "file", header.Filename, "labels", len(opts.Labels))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ImportResponse{Options: opts, Filename: header.Filename})
}
