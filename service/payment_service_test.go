package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-fee/domain"
)

func TestPaymentCalculator_CalculatePayment(t *testing.T) {
	table := defaultTable(t)
	fees := NewFeeCalculator(table)
	payments := NewPaymentCalculator()

	tests := []struct {
		term   int
		amount float64
		want   float64
	}{
		{12, 1000, 87.5},
		{12, 2000, 174.17},
		{12, 3000, 257.5},
		{12, 4000, 342.92},
		{12, 5000, 425.0},
		{12, 6000, 510.0},
		{12, 7000, 595.0},
		{12, 8000, 680.0},
		{12, 9000, 765.0},
		{12, 10000, 850.0},
		{12, 11000, 935.0},
		{12, 12000, 1020.0},
		{12, 13000, 1105.0},
		{12, 14000, 1190.0},
		{12, 15000, 1275.0},
		{12, 16000, 1360.0},
		{12, 17000, 1445.0},
		{12, 18000, 1530.0},
		{12, 19000, 1615.0},
		{12, 20000, 1700.0},
		{24, 1000, 44.58},
		{24, 2000, 87.5},
		{24, 2750, 119.38},
		{24, 3000, 130.0},
		{24, 4000, 173.33},
		{24, 5000, 216.67},
		{24, 6000, 260.0},
		{24, 7000, 303.33},
		{24, 8000, 346.67},
		{24, 9000, 390.0},
		{24, 10000, 433.33},
		{24, 11000, 476.67},
		{24, 12000, 520.0},
		{24, 13000, 563.33},
		{24, 14000, 606.67},
		{24, 15000, 650.0},
		{24, 16000, 693.33},
		{24, 17000, 736.67},
		{24, 18000, 780.0},
		{24, 19000, 823.33},
		{24, 20000, 866.67},
	}

	for _, tt := range tests {
		req := mustRequest(t, tt.term, tt.amount, table)
		fee, err := fees.CalculateFee(req)
		require.NoError(t, err)

		payment, err := payments.CalculatePayment(req, fee)
		require.NoError(t, err)
		assert.Equal(t, tt.want, payment, "term %d amount %v", tt.term, tt.amount)
	}
}

func TestPaymentCalculator_UsesGivenFee(t *testing.T) {
	req := mustRequest(t, 12, 1000, defaultTable(t))

	payment, err := NewPaymentCalculator().CalculatePayment(req, 50)
	require.NoError(t, err)
	assert.Equal(t, 87.5, payment)
}

func TestPaymentCalculator_ZeroValueRequest(t *testing.T) {
	_, err := NewPaymentCalculator().CalculatePayment(domain.LoanRequest{}, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTermNotConfigured)
}
