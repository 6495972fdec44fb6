package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"loan-fee/domain"
	"loan-fee/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  *slog.Logger
}

func NewLoanHandler(service *service.LoanService, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger}
}

type loanInput struct {
	Term   *int     `json:"term"`
	Amount *float64 `json:"amount"`
}

func (h *LoanHandler) decodeLoan(w http.ResponseWriter, r *http.Request) (int, float64, bool) {
	var input loanInput
	if !decodeJSON(w, r, h.logger, &input) {
		return 0, 0, false
	}
	if input.Term == nil || input.Amount == nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "term and amount are required"})
		return 0, 0, false
	}
	return *input.Term, *input.Amount, true
}

// CalculateFee handles POST /loan/fee.
func (h *LoanHandler) CalculateFee(w http.ResponseWriter, r *http.Request) {
	term, amount, ok := h.decodeLoan(w, r)
	if !ok {
		return
	}

	result, err := h.service.CalculateFee(term, amount)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// CalculateQuote handles POST /loan/quote.
func (h *LoanHandler) CalculateQuote(w http.ResponseWriter, r *http.Request) {
	term, amount, ok := h.decodeLoan(w, r)
	if !ok {
		return
	}

	quote, err := h.service.CalculateQuote(term, amount)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, quote)
}

// GetQuote handles GET /loan/quotes/{id}.
func (h *LoanHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.FindQuote(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, quote)
}

type feeTableResponse struct {
	MinTerm int                `json:"min_term"`
	MaxTerm int                `json:"max_term"`
	Terms   []domain.TermRange `json:"terms"`
}

// FeeTable handles GET /fee-table.
func (h *LoanHandler) FeeTable(w http.ResponseWriter, _ *http.Request) {
	table := h.service.Table()
	writeJSON(w, h.logger, http.StatusOK, newFeeTableResponse(table))
}

func newFeeTableResponse(table *domain.FeeTable) feeTableResponse {
	return feeTableResponse{
		MinTerm: table.MinTerm(),
		MaxTerm: table.MaxTerm(),
		Terms:   table.Ranges(),
	}
}
