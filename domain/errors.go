package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for broad classification.
var (
	ErrTermOutOfRange    = errors.New("term out of range")
	ErrAmountOutOfRange  = errors.New("amount out of range")
	ErrTermNotConfigured = errors.New("term not configured")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrNotFound          = errors.New("not found")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindTermOutOfRange    ErrorKind = "term_out_of_range"
	KindAmountOutOfRange  ErrorKind = "amount_out_of_range"
	KindTermNotConfigured ErrorKind = "term_not_configured"
	KindInvalidConfig     ErrorKind = "invalid_config"
	KindNotFound          ErrorKind = "not_found"
)

const (
	BoundMin = "min"
	BoundMax = "max"
)

// ValidationError reports a rejected loan input and the bound it crossed.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Bound string
	Limit float64
	Value float64
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}

	rel := "above"
	if e.Bound == BoundMin {
		rel = "below"
	}
	return fmt.Sprintf("%s: %s %s is %s %s %s",
		kindSentinel(e.Kind), e.Field, formatNumber(e.Value), rel, e.Bound, formatNumber(e.Limit))
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return kindSentinel(e.Kind)
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// IsValidation reports whether err was caused by caller input rather than by
// the fee table or the process.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func kindSentinel(kind ErrorKind) error {
	switch kind {
	case KindTermOutOfRange:
		return ErrTermOutOfRange
	case KindAmountOutOfRange:
		return ErrAmountOutOfRange
	case KindTermNotConfigured:
		return ErrTermNotConfigured
	case KindInvalidConfig:
		return ErrInvalidConfig
	case KindNotFound:
		return ErrNotFound
	default:
		return errors.New(string(kind))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func invalidTable(msg string, args ...any) error {
	return &OpError{
		Op:   "domain.fee_table",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(msg, args...), ErrInvalidConfig),
	}
}
