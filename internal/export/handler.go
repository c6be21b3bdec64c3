package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vizkit/vizkit/backend-go/internal/chart"
)

const maxRequestSize = 1 << 20 // 1MB of options JSON is plenty

// Handler serves the chart image export endpoint.
type Handler struct {
	defaultWidth  int
	defaultHeight int
}

func NewHandler(defaultWidth, defaultHeight int) *Handler {
	return &Handler{defaultWidth: defaultWidth, defaultHeight: defaultHeight}
}

type exportRequest struct {
	Options json.RawMessage `json:"options"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Format  string          `json:"format"`
	Name    string          `json:"name"`
}

// ExportChart handles POST /export/chart: a JSON body carrying chart options
// plus image parameters, answered with the rendered PNG or SVG.
func (h *Handler) ExportChart(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Options) == 0 {
		http.Error(w, "options is required", http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "svg" {
		http.Error(w, "invalid format: must be png or svg", http.StatusBadRequest)
		return
	}

	width, height := req.Width, req.Height
	if width <= 0 || width > 4096 {
		width = h.defaultWidth
	}
	if height <= 0 || height > 4096 {
		height = h.defaultHeight
	}

	name := req.Name
	if name == "" {
		name = "chart"
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	if err := chart.ValidateOptions(req.Options); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := Render(req.Options, width, height, format)
	if err != nil {
		if errors.Is(err, ErrUnsupportedKind) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("chart render failed", "error", err)
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}

	contentType := "image/png"
	if format == "svg" {
		contentType = "image/svg+xml"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)

	slog.Info("export complete", "format", format, "size", len(data))
}
