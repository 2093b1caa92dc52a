package chrome

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedDelayWaits(t *testing.T) {
	start := time.Now()
	err := FixedDelay(20 * time.Millisecond).Wait(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFixedDelayHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := FixedDelay(time.Hour).Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNoDelay(t *testing.T) {
	require.NoError(t, NoDelay().Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NoDelay().Wait(ctx), context.Canceled)
}
