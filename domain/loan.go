package domain

import "time"

// LoanRequest is a term/amount pair that has been checked against a fee table.
// Build it with NewLoanRequest.
type LoanRequest struct {
	term    int
	amount  float64
	amounts []float64
}

// NewLoanRequest validates term and amount against table. The amount range is
// taken from the closest configured term when term itself is not configured.
func NewLoanRequest(term int, amount float64, table *FeeTable) (LoanRequest, error) {
	if term < table.MinTerm() {
		return LoanRequest{}, &ValidationError{
			Kind: KindTermOutOfRange, Field: "term", Bound: BoundMin,
			Limit: float64(table.MinTerm()), Value: float64(term),
		}
	}
	if term > table.MaxTerm() {
		return LoanRequest{}, &ValidationError{
			Kind: KindTermOutOfRange, Field: "term", Bound: BoundMax,
			Limit: float64(table.MaxTerm()), Value: float64(term),
		}
	}

	amounts, _ := table.Amounts(table.ClosestTerm(term))
	minAmount, maxAmount := amounts[0], amounts[len(amounts)-1]

	// NaN compares false both ways, so it is rejected explicitly.
	if !isFinite(amount) || amount < minAmount {
		return LoanRequest{}, &ValidationError{
			Kind: KindAmountOutOfRange, Field: "amount", Bound: BoundMin,
			Limit: minAmount, Value: amount,
		}
	}
	if amount > maxAmount {
		return LoanRequest{}, &ValidationError{
			Kind: KindAmountOutOfRange, Field: "amount", Bound: BoundMax,
			Limit: maxAmount, Value: amount,
		}
	}

	return LoanRequest{
		term:    term,
		amount:  amount,
		amounts: amounts,
	}, nil
}

func (r LoanRequest) Term() int { return r.term }

func (r LoanRequest) Amount() float64 { return r.amount }

// Amounts returns the configured amounts the request was validated against.
func (r LoanRequest) Amounts() []float64 {
	out := make([]float64, len(r.amounts))
	copy(out, r.amounts)
	return out
}

// FeeResult is the fee computed for a request.
type FeeResult struct {
	Term         int     `json:"term"`
	Amount       float64 `json:"amount"`
	Fee          float64 `json:"fee"`
	Interpolated bool    `json:"interpolated"`
}

// Quote is a fee together with the periodic payment it implies.
type Quote struct {
	ID           string    `json:"id"`
	Term         int       `json:"term"`
	Amount       float64   `json:"amount"`
	Fee          float64   `json:"fee"`
	Payment      float64   `json:"payment"`
	Interpolated bool      `json:"interpolated"`
	CreatedAt    time.Time `json:"created_at"`
}
