package http

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"pandaledger/domain"
	"pandaledger/service"
)

type WealthHandler struct {
	service *service.WealthService
	logger  *log.Logger
}

func NewWealthHandler(service *service.WealthService, logger *log.Logger) *WealthHandler {
	return &WealthHandler{service: service, logger: logger}
}

func (h *WealthHandler) CalculateSIP(w http.ResponseWriter, r *http.Request) {
	var input domain.SIPInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.CalculateSIP(r.Context(), input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, result)
}

func (h *WealthHandler) CalculateSWP(w http.ResponseWriter, r *http.Request) {
	var input domain.SWPInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.CalculateSWP(r.Context(), input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, result)
}

// History lists saved projections. Query: kind=sip|swp, limit=N (default 20).
func (h *WealthHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	kind := domain.ProjectionKind(r.URL.Query().Get("kind"))

	projections, err := h.service.History(r.Context(), kind, limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, projections)
}
