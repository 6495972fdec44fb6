package domain

import (
	"math"
	"sort"
)

// FeeBand is one configured (amount, fee) cell of a term row.
type FeeBand struct {
	Amount float64
	Fee    float64
}

// FeeTable maps loan terms to the fees configured for each amount.
// It is immutable once built and safe for concurrent use.
type FeeTable struct {
	terms []int
	bands map[int][]FeeBand
}

// TermRange summarises the amounts configured for a term.
type TermRange struct {
	Term      int     `json:"term"`
	MinAmount float64 `json:"min_amount"`
	MaxAmount float64 `json:"max_amount"`
	Amounts   int     `json:"amounts"`
}

// NewFeeTable builds a table from per-term bands. Bands may be given in any
// order; they are sorted by amount.
func NewFeeTable(rows map[int][]FeeBand) (*FeeTable, error) {
	if len(rows) == 0 {
		return nil, invalidTable("no terms configured")
	}

	t := &FeeTable{
		terms: make([]int, 0, len(rows)),
		bands: make(map[int][]FeeBand, len(rows)),
	}

	for term, row := range rows {
		if term <= 0 {
			return nil, invalidTable("term %d must be positive", term)
		}
		if len(row) == 0 {
			return nil, invalidTable("term %d has no amounts", term)
		}

		sorted := make([]FeeBand, len(row))
		copy(sorted, row)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Amount < sorted[j].Amount
		})

		for i, b := range sorted {
			if !isFinite(b.Amount) || b.Amount <= 0 {
				return nil, invalidTable("term %d: amount %s must be positive", term, formatNumber(b.Amount))
			}
			if !isFinite(b.Fee) || b.Fee < 0 {
				return nil, invalidTable("term %d: fee for amount %s must not be negative", term, formatNumber(b.Amount))
			}
			if i > 0 && sorted[i-1].Amount == b.Amount {
				return nil, invalidTable("term %d: duplicate amount %s", term, formatNumber(b.Amount))
			}
		}

		t.terms = append(t.terms, term)
		t.bands[term] = sorted
	}
	sort.Ints(t.terms)

	if err := t.verifyAnchors(); err != nil {
		return nil, err
	}
	return t, nil
}

// verifyAnchors checks that every unconfigured term between two neighbours can
// be interpolated: the amounts of the term it resolves to must exist on the
// other neighbour as well.
func (t *FeeTable) verifyAnchors() error {
	for i := 0; i+1 < len(t.terms); i++ {
		lo, hi := t.terms[i], t.terms[i+1]
		gap := hi - lo

		// lo+1 resolves to lo (ties included).
		if gap >= 2 {
			if err := t.covers(lo, hi); err != nil {
				return err
			}
		}
		// hi-1 resolves to hi.
		if gap >= 3 {
			if err := t.covers(hi, lo); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *FeeTable) covers(from, to int) error {
	for _, b := range t.bands[from] {
		if _, ok := t.Fee(to, b.Amount); !ok {
			return invalidTable("amount %s of term %d is missing from term %d", formatNumber(b.Amount), from, to)
		}
	}
	return nil
}

// Terms returns the configured terms in ascending order.
func (t *FeeTable) Terms() []int {
	out := make([]int, len(t.terms))
	copy(out, t.terms)
	return out
}

func (t *FeeTable) MinTerm() int { return t.terms[0] }

func (t *FeeTable) MaxTerm() int { return t.terms[len(t.terms)-1] }

// HasTerm reports whether term is a configured row.
func (t *FeeTable) HasTerm(term int) bool {
	_, ok := t.bands[term]
	return ok
}

// Amounts returns the configured amounts of a term in ascending order.
func (t *FeeTable) Amounts(term int) ([]float64, bool) {
	row, ok := t.bands[term]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(row))
	for i, b := range row {
		out[i] = b.Amount
	}
	return out, true
}

// Fee returns the stored fee for exactly (term, amount).
func (t *FeeTable) Fee(term int, amount float64) (float64, bool) {
	row, ok := t.bands[term]
	if !ok {
		return 0, false
	}
	i := sort.Search(len(row), func(i int) bool {
		return row[i].Amount >= amount
	})
	if i < len(row) && row[i].Amount == amount {
		return row[i].Fee, true
	}
	return 0, false
}

// ClosestTerm returns term itself when configured, otherwise the configured
// term nearest to it. Ties resolve to the lower term.
func (t *FeeTable) ClosestTerm(term int) int {
	if t.HasTerm(term) {
		return term
	}

	best := t.terms[0]
	for _, c := range t.terms[1:] {
		if absInt(c-term) < absInt(best-term) {
			best = c
		}
	}
	return best
}

// Ranges lists each term with its amount bounds.
func (t *FeeTable) Ranges() []TermRange {
	out := make([]TermRange, 0, len(t.terms))
	for _, term := range t.terms {
		row := t.bands[term]
		out = append(out, TermRange{
			Term:      term,
			MinAmount: row[0].Amount,
			MaxAmount: row[len(row)-1].Amount,
			Amounts:   len(row),
		})
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
