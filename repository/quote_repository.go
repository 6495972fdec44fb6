package repository

import "loan-fee/domain"

// QuoteRepository keeps an audit trail of issued quotes.
type QuoteRepository interface {
	Save(quote domain.Quote) error
	FindByID(id string) (domain.Quote, error)
}
