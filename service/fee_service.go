package service

import (
	"fmt"
	"math"

	"loan-fee/domain"
)

// FeeCalculator derives the origination fee for a loan request from a fee
// table, interpolating between neighbouring cells when the exact cell is not
// configured. It holds no mutable state.
type FeeCalculator struct {
	table *domain.FeeTable
}

func NewFeeCalculator(table *domain.FeeTable) *FeeCalculator {
	return &FeeCalculator{table: table}
}

// CalculateFee returns the fee for req rounded to two decimals. Errors are
// only returned when the table lacks an anchor cell the request depends on.
func (c *FeeCalculator) CalculateFee(req domain.LoanRequest) (float64, error) {
	res, err := c.Calculate(req)
	if err != nil {
		return 0, err
	}
	return res.Fee, nil
}

// Calculate is CalculateFee that also reports whether the fee was
// interpolated.
func (c *FeeCalculator) Calculate(req domain.LoanRequest) (domain.FeeResult, error) {
	term, amount := req.Term(), req.Amount()

	// Only a zero-value request has no amounts.
	if len(req.Amounts()) == 0 {
		return domain.FeeResult{}, &domain.OpError{
			Op:   "service.calculate_fee",
			Kind: domain.KindTermNotConfigured,
			Err:  fmt.Errorf("term %d has no amounts: %w", term, domain.ErrTermNotConfigured),
		}
	}

	// Exact cells are returned as authored, without the multiple-of-5 step.
	if fee, ok := c.table.Fee(term, amount); ok {
		return domain.FeeResult{Term: term, Amount: amount, Fee: fee}, nil
	}

	lowerAmount, higherAmount := bracketAmounts(req.Amounts(), amount)

	lowerFee, lowerOK := c.table.Fee(term, lowerAmount)
	higherFee, higherOK := c.table.Fee(term, higherAmount)
	if !lowerOK || !higherOK {
		var err error
		lowerFee, higherFee, err = c.interpolateTerm(term, lowerAmount, higherAmount)
		if err != nil {
			return domain.FeeResult{}, err
		}
	}

	a := coefficient(amount-lowerAmount, higherAmount-lowerAmount)
	// The explicit conversions keep the compiler from fusing multiply-add,
	// which would change results on some architectures.
	fee := lowerFee + float64(a*(higherFee-lowerFee))

	if rem := math.Mod(amount+fee, FeeMultiple); rem > 0 {
		fee += FeeMultiple - rem
	}

	return domain.FeeResult{
		Term:         term,
		Amount:       amount,
		Fee:          roundTo2Decimals(fee),
		Interpolated: true,
	}, nil
}

// interpolateTerm blends the fees at both amount anchors across the two
// configured terms around term.
func (c *FeeCalculator) interpolateTerm(term int, lowerAmount, higherAmount float64) (float64, float64, error) {
	lowerTerm, higherTerm := bracketTerms(c.table.Terms(), term)

	lowerTermLowerFee, err := c.anchor(lowerTerm, lowerAmount)
	if err != nil {
		return 0, 0, err
	}
	lowerTermHigherFee, err := c.anchor(lowerTerm, higherAmount)
	if err != nil {
		return 0, 0, err
	}
	higherTermLowerFee, err := c.anchor(higherTerm, lowerAmount)
	if err != nil {
		return 0, 0, err
	}
	higherTermHigherFee, err := c.anchor(higherTerm, higherAmount)
	if err != nil {
		return 0, 0, err
	}

	t := coefficient(float64(higherTerm-term), float64(higherTerm-lowerTerm))

	lowerFee := higherTermLowerFee - float64(t*(higherTermLowerFee-lowerTermLowerFee))
	higherFee := higherTermHigherFee - float64(t*(higherTermHigherFee-lowerTermHigherFee))
	return lowerFee, higherFee, nil
}

func (c *FeeCalculator) anchor(term int, amount float64) (float64, error) {
	fee, ok := c.table.Fee(term, amount)
	if !ok {
		return 0, &domain.OpError{
			Op:   "service.fee_anchor",
			Kind: domain.KindTermNotConfigured,
			Err: fmt.Errorf("no fee for term %d amount %s: %w",
				term, formatAmount(amount), domain.ErrTermNotConfigured),
		}
	}
	return fee, nil
}

// bracketAmounts finds the largest configured amount <= amount and the
// smallest >= amount. amounts must be ascending and contain amount's range.
func bracketAmounts(amounts []float64, amount float64) (float64, float64) {
	lower, higher := amounts[0], amounts[len(amounts)-1]
	for _, a := range amounts {
		if a <= amount {
			lower = a
		}
		if a >= amount {
			higher = a
			break
		}
	}
	return lower, higher
}

func bracketTerms(terms []int, term int) (int, int) {
	lower, higher := terms[0], terms[len(terms)-1]
	for _, t := range terms {
		if t <= term {
			lower = t
		}
		if t >= term {
			higher = t
			break
		}
	}
	return lower, higher
}

// coefficient is num/den, or 1 when either truncates to zero. A zero-width
// interval is weighted fully toward the higher anchor.
func coefficient(num, den float64) float64 {
	if int64(num) == 0 || int64(den) == 0 {
		return 1
	}
	return num / den
}
