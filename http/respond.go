package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"pandaledger/service"
)

// maxBodyBytes caps request bodies; analytics payloads carry full history.
const maxBodyBytes = 4 << 20

// decodeJSON checks method and content type, then decodes the body into v.
// It writes the error response itself and reports whether to continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *log.Logger, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		logger.Debug("error decoding request body", "path", r.URL.Path, "err", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		logger.Debug("rejected request", "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.Error("request failed", "path", r.URL.Path, "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, v any) {
	// encode into a buffer first so a failure can still send a 500
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("error encoding response", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("error writing response", "err", err)
	}
}
