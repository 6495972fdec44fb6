package service

import (
	"fmt"

	"loan-fee/domain"
)

// PaymentCalculator spreads principal plus fee evenly over the loan term.
type PaymentCalculator struct{}

func NewPaymentCalculator() *PaymentCalculator {
	return &PaymentCalculator{}
}

// CalculatePayment returns (amount + fee) / term rounded to two decimals.
func (p *PaymentCalculator) CalculatePayment(req domain.LoanRequest, fee float64) (float64, error) {
	// Only a zero-value request can get here with term 0.
	if req.Term() <= 0 {
		return 0, &domain.OpError{
			Op:   "service.calculate_payment",
			Kind: domain.KindTermNotConfigured,
			Err:  fmt.Errorf("term %d: %w", req.Term(), domain.ErrTermNotConfigured),
		}
	}

	return roundTo2Decimals((req.Amount() + fee) / float64(req.Term())), nil
}
