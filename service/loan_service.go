package service

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"loan-fee/domain"
	"loan-fee/repository"
)

type LoanService struct {
	table    *domain.FeeTable
	fees     *FeeCalculator
	payments *PaymentCalculator
	repo     repository.QuoteRepository
	cache    repository.CacheRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewLoanService creates a new LoanService over the given fee table.
func NewLoanService(
	table *domain.FeeTable,
	repo repository.QuoteRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *LoanService {
	return &LoanService{
		table:    table,
		fees:     NewFeeCalculator(table),
		payments: NewPaymentCalculator(),
		repo:     repo,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *LoanService) Table() *domain.FeeTable { return s.table }

// NewRequest validates term and amount against the service's table.
func (s *LoanService) NewRequest(term int, amount float64) (domain.LoanRequest, error) {
	return domain.NewLoanRequest(term, amount, s.table)
}

// CalculateFee validates the input and returns the fee for it.
func (s *LoanService) CalculateFee(term int, amount float64) (domain.FeeResult, error) {
	req, err := s.NewRequest(term, amount)
	if err != nil {
		return domain.FeeResult{}, err
	}

	res, err := s.fees.Calculate(req)
	if err != nil {
		s.logger.Error("fee table integrity", "term", term, "amount", amount, "err", err)
		return domain.FeeResult{}, err
	}

	s.logger.Debug("fee calculated", "term", term, "amount", amount, "fee", res.Fee, "interpolated", res.Interpolated)
	return res, nil
}

// CalculateQuote computes fee and payment for the input. Results are cached
// per (term, amount) and every returned quote is saved, so its ID can be
// looked up with FindQuote.
func (s *LoanService) CalculateQuote(term int, amount float64) (domain.Quote, error) {
	req, err := s.NewRequest(term, amount)
	if err != nil {
		return domain.Quote{}, err
	}

	key := quoteCacheKey(term, amount)
	if cached, ok := s.cache.Get(key); ok {
		var q domain.Quote
		if err := json.Unmarshal([]byte(cached), &q); err == nil {
			s.logger.Debug("quote cache hit", "key", key)
			// The cache may outlive the quote store, so the quote is saved
			// again to keep its ID retrievable.
			if err := s.repo.Save(q); err != nil {
				s.logger.Warn("failed to save cached quote", "id", q.ID, "err", err)
			}
			return q, nil
		}
		s.logger.Warn("discarding unreadable cached quote", "key", key)
	}

	res, err := s.fees.Calculate(req)
	if err != nil {
		s.logger.Error("fee table integrity", "term", term, "amount", amount, "err", err)
		return domain.Quote{}, err
	}

	payment, err := s.payments.CalculatePayment(req, res.Fee)
	if err != nil {
		return domain.Quote{}, err
	}

	q := domain.Quote{
		ID:           uuid.NewString(),
		Term:         term,
		Amount:       amount,
		Fee:          res.Fee,
		Payment:      payment,
		Interpolated: res.Interpolated,
		CreatedAt:    s.now().UTC(),
	}

	// Persisting and caching are not critical to the answer.
	if err := s.repo.Save(q); err != nil {
		s.logger.Warn("failed to save quote", "id", q.ID, "err", err)
	}
	if b, err := json.Marshal(q); err == nil {
		if err := s.cache.Set(key, string(b)); err != nil {
			s.logger.Warn("failed to cache quote", "key", key, "err", err)
		}
	}

	return q, nil
}

// FindQuote returns a previously issued quote.
func (s *LoanService) FindQuote(id string) (domain.Quote, error) {
	return s.repo.FindByID(id)
}

func quoteCacheKey(term int, amount float64) string {
	return "quote:" + strconv.Itoa(term) + ":" + formatAmount(amount)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
