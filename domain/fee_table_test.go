package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRows is the 12/24 month table the service ships with.
func sampleRows() map[int][]FeeBand {
	rows := map[int][]FeeBand{
		12: {{1000, 50}, {2000, 90}, {3000, 90}, {4000, 115}},
		24: {{1000, 70}, {2000, 100}, {3000, 120}},
	}
	for k := 5; k <= 20; k++ {
		rows[12] = append(rows[12], FeeBand{Amount: float64(k * 1000), Fee: float64(20 * k)})
	}
	for k := 4; k <= 20; k++ {
		rows[24] = append(rows[24], FeeBand{Amount: float64(k * 1000), Fee: float64(40 * k)})
	}
	return rows
}

func sampleTable(t *testing.T) *FeeTable {
	t.Helper()
	table, err := NewFeeTable(sampleRows())
	require.NoError(t, err)
	return table
}

func TestNewFeeTable_SortsTermsAndAmounts(t *testing.T) {
	table, err := NewFeeTable(map[int][]FeeBand{
		24: {{3000, 120}, {1000, 70}, {2000, 100}},
		12: {{2000, 90}, {3000, 90}, {1000, 50}},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{12, 24}, table.Terms())
	assert.Equal(t, 12, table.MinTerm())
	assert.Equal(t, 24, table.MaxTerm())

	amounts, ok := table.Amounts(24)
	require.True(t, ok)
	assert.Equal(t, []float64{1000, 2000, 3000}, amounts)
}

func TestNewFeeTable_Rejects(t *testing.T) {
	tests := []struct {
		name string
		rows map[int][]FeeBand
		msg  string
	}{
		{name: "empty", rows: nil, msg: "no terms"},
		{name: "zero term", rows: map[int][]FeeBand{0: {{1000, 50}}}, msg: "term 0 must be positive"},
		{name: "term without amounts", rows: map[int][]FeeBand{12: {}}, msg: "term 12 has no amounts"},
		{name: "negative amount", rows: map[int][]FeeBand{12: {{-1, 50}}}, msg: "must be positive"},
		{name: "negative fee", rows: map[int][]FeeBand{12: {{1000, -5}}}, msg: "must not be negative"},
		{name: "nan fee", rows: map[int][]FeeBand{12: {{1000, math.NaN()}}}, msg: "must not be negative"},
		{name: "duplicate amount", rows: map[int][]FeeBand{12: {{1000, 50}, {1000, 60}}}, msg: "duplicate amount 1000"},
		{
			name: "lower neighbour amount missing above",
			rows: map[int][]FeeBand{
				12: {{1000, 50}, {1500, 70}, {2000, 90}},
				24: {{1000, 70}, {2000, 100}},
			},
			msg: "amount 1500 of term 12 is missing from term 24",
		},
		{
			name: "upper neighbour amount missing below",
			rows: map[int][]FeeBand{
				12: {{1000, 50}, {2000, 90}},
				24: {{1000, 70}, {1500, 80}, {2000, 100}},
			},
			msg: "amount 1500 of term 24 is missing from term 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFeeTable(tt.rows)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.True(t, IsKind(err, KindInvalidConfig))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewFeeTable_AdjacentTermsNeedNoSharedAmounts(t *testing.T) {
	// Nothing lies between 12 and 13, so their amounts may differ.
	_, err := NewFeeTable(map[int][]FeeBand{
		12: {{1000, 50}, {1500, 70}},
		13: {{1000, 55}, {2000, 95}},
	})
	assert.NoError(t, err)
}

func TestNewFeeTable_GapOfTwoOnlyChecksLowerTerm(t *testing.T) {
	// 13 ties between 12 and 14 and resolves to 12.
	_, err := NewFeeTable(map[int][]FeeBand{
		12: {{1000, 50}, {2000, 90}},
		14: {{1000, 60}, {1500, 80}, {2000, 100}},
	})
	assert.NoError(t, err)
}

func TestFeeTable_Fee(t *testing.T) {
	table := sampleTable(t)

	fee, ok := table.Fee(12, 4000)
	require.True(t, ok)
	assert.Equal(t, 115.0, fee)

	_, ok = table.Fee(12, 4000.5)
	assert.False(t, ok)

	_, ok = table.Fee(13, 4000)
	assert.False(t, ok)
}

func TestFeeTable_ClosestTerm(t *testing.T) {
	table, err := NewFeeTable(map[int][]FeeBand{
		12: {{1000, 50}},
		18: {{1000, 60}},
		24: {{1000, 70}},
	})
	require.NoError(t, err)

	tests := []struct {
		term int
		want int
	}{
		{12, 12},
		{13, 12},
		{15, 12}, // tie: lowest wins
		{16, 18},
		{18, 18},
		{21, 18}, // tie: lowest wins
		{22, 24},
		{24, 24},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.ClosestTerm(tt.term), "term %d", tt.term)
	}
}

func TestFeeTable_Ranges(t *testing.T) {
	table := sampleTable(t)

	assert.Equal(t, []TermRange{
		{Term: 12, MinAmount: 1000, MaxAmount: 20000, Amounts: 20},
		{Term: 24, MinAmount: 1000, MaxAmount: 20000, Amounts: 20},
	}, table.Ranges())
}

func TestFeeTable_AccessorsReturnCopies(t *testing.T) {
	table := sampleTable(t)

	terms := table.Terms()
	terms[0] = 99
	assert.Equal(t, 12, table.MinTerm())

	amounts, _ := table.Amounts(12)
	amounts[0] = 1
	again, _ := table.Amounts(12)
	assert.Equal(t, 1000.0, again[0])
}
