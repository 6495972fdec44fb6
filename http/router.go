package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"loan-fee/service"
)

type RouterDeps struct {
	LoanService        *service.LoanService
	TermService        *service.TermRecommendationService
	RateLimiter        *RateLimiter // nil disables rate limiting
	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

// NewRouter wires the loan endpoints. Calculation routes share the rate
// limiter; /health and /fee-table are not limited.
func NewRouter(deps RouterDeps) http.Handler {
	loanHandler := NewLoanHandler(deps.LoanService, deps.Logger)
	termHandler := NewTermRecommendationHandler(deps.TermService, deps.Logger)

	router := mux.NewRouter()
	router.HandleFunc("/health", health).Methods(http.MethodGet)
	router.HandleFunc("/fee-table", loanHandler.FeeTable).Methods(http.MethodGet)

	// Kept on the root router: a method mismatch must answer 405.
	limit := func(h http.HandlerFunc) http.Handler {
		if deps.RateLimiter == nil {
			return h
		}
		return RateLimitMiddleware(deps.RateLimiter)(h)
	}
	router.Handle("/loan/fee", limit(loanHandler.CalculateFee)).Methods(http.MethodPost)
	router.Handle("/loan/quote", limit(loanHandler.CalculateQuote)).Methods(http.MethodPost)
	router.Handle("/loan/quotes/{id}", limit(loanHandler.GetQuote)).Methods(http.MethodGet)
	router.Handle("/loan/term-options", limit(termHandler.RecommendTerm)).Methods(http.MethodPost)

	origins := deps.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(router)
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
