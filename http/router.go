package http

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// NewRouter wires the handlers behind the rate limiter and request logging.
func NewRouter(
	wealth *WealthHandler,
	portfolio *PortfolioHandler,
	limiter *RateLimiter,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, h)
	}

	mux.Handle("/wealth/sip", limited(wealth.CalculateSIP))
	mux.Handle("/wealth/swp", limited(wealth.CalculateSWP))
	mux.Handle("/wealth/history", limited(wealth.History))
	mux.Handle("/portfolio/performance", limited(portfolio.Performance))
	mux.Handle("/portfolio/analytics", limited(portfolio.Analytics))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return LoggingMiddleware(logger, mux)
}
