package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"loan-fee/domain"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoEligibleTerm = errors.New("no eligible term")
)

type TermRecommendationService struct {
	table    *domain.FeeTable
	fees     *FeeCalculator
	payments *PaymentCalculator
	logger   *slog.Logger
}

func NewTermRecommendationService(table *domain.FeeTable, logger *slog.Logger) *TermRecommendationService {
	return &TermRecommendationService{
		table:    table,
		fees:     NewFeeCalculator(table),
		payments: NewPaymentCalculator(),
		logger:   logger,
	}
}

// RecommendTerm evaluates every term in the requested range for the amount
// and ranks the ones whose payment fits under the limit.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if input.Amount <= 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	if input.MaxMonthlyPayment < 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("max payment must not be negative: %w", ErrInvalidInput)
	}

	minTerm, maxTerm := input.MinTermMonths, input.MaxTermMonths
	if minTerm <= 0 || minTerm < s.table.MinTerm() {
		minTerm = s.table.MinTerm()
	}
	if maxTerm <= 0 || maxTerm > s.table.MaxTerm() {
		maxTerm = s.table.MaxTerm()
	}
	if minTerm > maxTerm {
		return domain.TermRecommendationResult{}, fmt.Errorf("min term %d is greater than max term %d: %w", minTerm, maxTerm, ErrInvalidInput)
	}
	if maxTerm-minTerm > MaxTermRangeMonths {
		return domain.TermRecommendationResult{}, fmt.Errorf("term range exceeds %d months: %w", MaxTermRangeMonths, ErrInvalidInput)
	}

	preference := input.Preference
	if preference == "" {
		preference = domain.PreferenceBalanced
	}
	switch preference {
	case domain.PreferenceMinimizeFee, domain.PreferenceMinimizePayment, domain.PreferenceBalanced:
	default:
		return domain.TermRecommendationResult{}, fmt.Errorf("unknown preference %q: %w", input.Preference, ErrInvalidInput)
	}

	recommendations := []domain.TermRecommendation{}

	for term := minTerm; term <= maxTerm; term++ {
		req, err := domain.NewLoanRequest(term, input.Amount, s.table)
		if err != nil {
			s.logger.Debug("skipping term", "term", term, "err", err)
			continue
		}

		res, err := s.fees.Calculate(req)
		if err != nil {
			return domain.TermRecommendationResult{}, err
		}
		payment, err := s.payments.CalculatePayment(req, res.Fee)
		if err != nil {
			return domain.TermRecommendationResult{}, err
		}

		if input.MaxMonthlyPayment > 0 && payment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			Fee:            res.Fee,
			MonthlyPayment: payment,
			TotalRepayable: roundTo2Decimals(input.Amount + res.Fee),
			Interpolated:   res.Interpolated,
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("amount %s with max payment %s: %w",
			formatAmount(input.Amount), formatAmount(input.MaxMonthlyPayment), ErrNoEligibleTerm)
	}

	s.score(recommendations, preference, minTerm, maxTerm)

	// Highest score first; the stable sort keeps the shorter term on ties.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
	}, nil
}

// score normalises fee, payment and term to 0-10 across the candidates and
// weights them by preference.
func (s *TermRecommendationService) score(
	recs []domain.TermRecommendation,
	preference string,
	minTerm, maxTerm int,
) {
	minFee, maxFee := recs[0].Fee, recs[0].Fee
	minPayment, maxPayment := recs[0].MonthlyPayment, recs[0].MonthlyPayment
	for _, r := range recs[1:] {
		minFee, maxFee = min(minFee, r.Fee), max(maxFee, r.Fee)
		minPayment, maxPayment = min(minPayment, r.MonthlyPayment), max(maxPayment, r.MonthlyPayment)
	}

	for i := range recs {
		r := &recs[i]

		feeScore := 10.0
		if maxFee > minFee {
			feeScore = 10.0 * (1.0 - (r.Fee-minFee)/(maxFee-minFee))
		}
		paymentScore := 10.0
		if maxPayment > minPayment {
			paymentScore = 10.0 * (1.0 - (r.MonthlyPayment-minPayment)/(maxPayment-minPayment))
		}
		termScore := 10.0
		if maxTerm > minTerm {
			termScore = 10.0 * (1.0 - float64(r.TermMonths-minTerm)/float64(maxTerm-minTerm))
		}

		var score float64
		switch preference {
		case domain.PreferenceMinimizeFee:
			score = 0.6*feeScore + 0.2*paymentScore + 0.2*termScore
		case domain.PreferenceMinimizePayment:
			score = 0.2*feeScore + 0.6*paymentScore + 0.2*termScore
		default:
			score = 0.4*feeScore + 0.4*paymentScore + 0.2*termScore
		}

		r.Score = roundTo2Decimals(score)
		r.Reason = generateReason(preference)
	}
}

func generateReason(preference string) string {
	switch preference {
	case domain.PreferenceMinimizeFee:
		return "Term chosen to keep the origination fee lowest"
	case domain.PreferenceMinimizePayment:
		return "Term chosen to keep the monthly payment lowest"
	case domain.PreferenceBalanced:
		return "Balance between monthly payment and total fee"
	}
	return "Recommendation based on the requested parameters"
}
