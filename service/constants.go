package service

const (
	DecimalPlaces = 2
	FeeMultiple   = 5.0 // amount + interpolated fee is rounded up to a multiple of this

	// Widest term range the term options search will scan
	MaxTermRangeMonths = 120
)
