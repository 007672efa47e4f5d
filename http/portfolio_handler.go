package http

import (
	"net/http"

	"github.com/charmbracelet/log"

	"pandaledger/domain"
	"pandaledger/service"
)

type PortfolioHandler struct {
	performance *service.PerformanceService
	analytics   *service.AnalyticsService
	logger      *log.Logger
}

func NewPortfolioHandler(
	performance *service.PerformanceService,
	analytics *service.AnalyticsService,
	logger *log.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{performance: performance, analytics: analytics, logger: logger}
}

func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	var input domain.ChartInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.performance.Chart(input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, result)
}

func (h *PortfolioHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	var input domain.AnalyticsInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.analytics.Analyze(input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, result)
}
