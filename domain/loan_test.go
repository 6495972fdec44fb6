package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoanRequest_Valid(t *testing.T) {
	table := sampleTable(t)

	tests := []struct {
		term   int
		amount float64
	}{
		{12, 1000},
		{13, 2001.9},
		{14, 3000},
		{15, 4000},
		{16, 5000},
		{17, 6000.0},
		{18, 7000},
		{19, 8000.0},
		{20, 9000},
		{21, 10000.30},
		{22, 13100.0},
		{23, 19500.0},
		{24, 20000.0},
	}

	for _, tt := range tests {
		req, err := NewLoanRequest(tt.term, tt.amount, table)
		require.NoError(t, err, "term %d amount %v", tt.term, tt.amount)
		assert.Equal(t, tt.term, req.Term())
		assert.Equal(t, tt.amount, req.Amount())
		assert.Len(t, req.Amounts(), 20)
	}
}

func TestNewLoanRequest_Invalid(t *testing.T) {
	table := sampleTable(t)

	tests := []struct {
		name   string
		term   int
		amount float64
		kind   ErrorKind
		bound  string
		msg    string
	}{
		{"term below min", 11, 1000, KindTermOutOfRange, BoundMin, "term 11 is below min 12"},
		{"term above max", 25, 1000, KindTermOutOfRange, BoundMax, "term 25 is above max 24"},
		{"zero term", 0, 1000, KindTermOutOfRange, BoundMin, "term 0 is below min 12"},
		{"amount below min", 12, 999, KindAmountOutOfRange, BoundMin, "amount 999 is below min 1000"},
		{"amount above max", 12, 20001, KindAmountOutOfRange, BoundMax, "amount 20001 is above max 20000"},
		{"zero amount", 12, 0, KindAmountOutOfRange, BoundMin, "amount 0 is below min 1000"},
		{"nan amount", 12, math.NaN(), KindAmountOutOfRange, BoundMin, "amount NaN"},
		{"infinite amount", 12, math.Inf(1), KindAmountOutOfRange, BoundMin, "amount +Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoanRequest(tt.term, tt.amount, table)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.bound, ve.Bound)
			assert.True(t, IsValidation(err))
			assert.True(t, IsKind(err, tt.kind))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewLoanRequest_UsesClosestTermRange(t *testing.T) {
	table, err := NewFeeTable(map[int][]FeeBand{
		12: {{1000, 50}, {2000, 90}, {5000, 100}},
		14: {{1000, 60}, {2000, 95}, {5000, 150}, {8000, 240}},
	})
	require.NoError(t, err)

	// 13 is equidistant and takes the lower term, whose range stops at 5000.
	_, err = NewLoanRequest(13, 6000, table)
	assert.True(t, IsKind(err, KindAmountOutOfRange))
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	req, err := NewLoanRequest(14, 6000, table)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 2000, 5000, 8000}, req.Amounts())

	req, err = NewLoanRequest(13, 5000, table)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 2000, 5000}, req.Amounts())
}

func TestNewLoanRequest_AmountsAreCopied(t *testing.T) {
	req, err := NewLoanRequest(12, 1500, sampleTable(t))
	require.NoError(t, err)

	amounts := req.Amounts()
	amounts[0] = 0
	assert.Equal(t, 1000.0, req.Amounts()[0])
}
