package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"grafik/internal/core"
)

// parseDate parses a date string in YYYY-MM-DD format as local time.
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), time.Local)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError writes a JSON error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a request body, limited to 64KB.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// pointView is the JSON shape of a chart point, carrying both raw and
// formatted values so clients never reformat rupiah themselves.
type pointView struct {
	Label     string `json:"label"`
	Value     int64  `json:"value"`
	Color     string `json:"color"`
	Formatted string `json:"formatted"`
	Short     string `json:"short"`
}

func newPointView(label string, value int64, color string) pointView {
	return pointView{
		Label:     label,
		Value:     value,
		Color:     color,
		Formatted: core.FormatRupiah(value),
		Short:     core.AbbreviateRupiah(value),
	}
}
