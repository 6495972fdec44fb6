package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loan-fee/domain"
)

// quoteRecord is the persisted form of domain.Quote.
type quoteRecord struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Term         int     `gorm:"not null;index"`
	Amount       float64 `gorm:"not null"`
	Fee          float64 `gorm:"not null"`
	Payment      float64 `gorm:"not null"`
	Interpolated bool    `gorm:"not null"`
	CreatedAt    time.Time
}

func (quoteRecord) TableName() string { return "loan_quotes" }

func newQuoteRecord(q domain.Quote) quoteRecord {
	return quoteRecord{
		ID:           q.ID,
		Term:         q.Term,
		Amount:       q.Amount,
		Fee:          q.Fee,
		Payment:      q.Payment,
		Interpolated: q.Interpolated,
		CreatedAt:    q.CreatedAt.UTC(),
	}
}

func (r quoteRecord) quote() domain.Quote {
	return domain.Quote{
		ID:           r.ID,
		Term:         r.Term,
		Amount:       r.Amount,
		Fee:          r.Fee,
		Payment:      r.Payment,
		Interpolated: r.Interpolated,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

// QuoteRepositoryPostgres stores quotes in PostgreSQL through gorm.
type QuoteRepositoryPostgres struct {
	db *gorm.DB
}

// NewQuoteRepositoryPostgres opens dsn and migrates the quotes table.
func NewQuoteRepositoryPostgres(dsn string) (*QuoteRepositoryPostgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&quoteRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate quotes: %w", err)
	}

	return NewQuoteRepositoryGorm(db), nil
}

// NewQuoteRepositoryGorm wraps an existing connection.
func NewQuoteRepositoryGorm(db *gorm.DB) *QuoteRepositoryPostgres {
	return &QuoteRepositoryPostgres{db: db}
}

func (r *QuoteRepositoryPostgres) Save(quote domain.Quote) error {
	rec := newQuoteRecord(quote)
	return r.db.Save(&rec).Error
}

func (r *QuoteRepositoryPostgres) FindByID(id string) (domain.Quote, error) {
	var rec quoteRecord
	err := r.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Quote{}, &domain.OpError{
			Op:   "repository.find_quote",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("quote %s: %w", id, domain.ErrNotFound),
		}
	}
	if err != nil {
		return domain.Quote{}, err
	}

	return rec.quote(), nil
}

func (r *QuoteRepositoryPostgres) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
