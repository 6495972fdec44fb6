package http

import (
	"log/slog"
	"net/http"

	"loan-fee/domain"
	"loan-fee/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  *slog.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, logger *slog.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, logger: logger}
}

// RecommendTerm handles POST /loan/term-options.
func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.RecommendTerm(input)
	if err != nil {
		h.logger.Info("term recommendation rejected", "amount", input.Amount, "err", err)
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
