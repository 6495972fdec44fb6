package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "repository.load_fee_table",
		Kind: KindInvalidConfig,
		Path: "fees.json",
		Err:  root,
	}

	assert.ErrorIs(t, err, root)
	assert.Equal(t, "repository.load_fee_table: invalid_config (path=fees.json): root", err.Error())
	assert.True(t, IsKind(err, KindInvalidConfig))
	assert.False(t, IsValidation(err))
}

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := &ValidationError{
		Kind:  KindAmountOutOfRange,
		Field: "amount",
		Bound: BoundMax,
		Limit: 20000,
		Value: 20000.5,
	}

	assert.ErrorIs(t, err, ErrAmountOutOfRange)
	assert.NotErrorIs(t, err, ErrTermOutOfRange)
	assert.Equal(t, "amount out of range: amount 20000.5 is above max 20000", err.Error())
}

func TestIsKindWrapped(t *testing.T) {
	inner := &ValidationError{Kind: KindTermOutOfRange, Field: "term", Bound: BoundMin}
	err := errors.Join(errors.New("context"), inner)

	assert.True(t, IsKind(err, KindTermOutOfRange))
	assert.False(t, IsKind(err, KindAmountOutOfRange))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
