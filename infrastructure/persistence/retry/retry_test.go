package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/Gift5848/gethub222-sub001/domain/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collapsedConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = 0
	cfg.MaxDelay = 0
	cfg.JitterEnabled = false
	return cfg
}

func TestExecuteWithRetryRecoversFromVersionConflict(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), collapsedConfig(), func(context.Context) error {
		attempts++
		if attempts == 1 {
			return wallet.NewConcurrentModificationError("wallet-1")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestExecuteWithRetryStopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), collapsedConfig(), func(context.Context) error {
		attempts++
		return wallet.ErrInsufficientBalance
	})

	assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)
	assert.Equal(t, 1, attempts)
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	cfg := collapsedConfig()
	cfg.MaxAttempts = 3

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, func(context.Context) error {
		attempts++
		return wallet.NewConcurrentModificationError("wallet-1")
	})

	assert.ErrorIs(t, err, wallet.ErrConcurrentModification)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWithRetryDisabledRunsOnce(t *testing.T) {
	cfg := collapsedConfig()
	cfg.Enabled = false

	attempts := 0
	err := ExecuteWithRetry(context.Background(), cfg, func(context.Context) error {
		attempts++
		return wallet.NewConcurrentModificationError("wallet-1")
	})

	assert.ErrorIs(t, err, wallet.ErrConcurrentModification)
	assert.Equal(t, 1, attempts)
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig

	assert.True(t, IsRetryableError(wallet.NewConcurrentModificationError("w"), cfg))
	assert.False(t, IsRetryableError(wallet.ErrInsufficientBalance, cfg))
	assert.False(t, IsRetryableError(nil, cfg))

	cfg.RetryOnConcurrentModification = false
	assert.False(t, IsRetryableError(wallet.NewConcurrentModificationError("w"), cfg))

	cfg.RetryPredicate = func(err error) bool { return errors.Is(err, wallet.ErrWalletNotFound) }
	assert.True(t, IsRetryableError(wallet.NewWalletNotFoundError("shop-1"), cfg))
}
