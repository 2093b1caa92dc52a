package chrome

import (
	"context"
	"time"
)

// WaitStrategy is the synchronization point after a navigation or in-page
// action. The auditor's pages re-render asynchronously with no completion
// signal, so production code waits a fixed interval; tests substitute
// NoDelay.
type WaitStrategy interface {
	Wait(ctx context.Context) error
}

type fixedDelay struct {
	d time.Duration
}

func FixedDelay(d time.Duration) WaitStrategy {
	return fixedDelay{d: d}
}

func (fd fixedDelay) Wait(ctx context.Context) error {
	timer := time.NewTimer(fd.d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type noDelay struct{}

func NoDelay() WaitStrategy {
	return noDelay{}
}

func (noDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}
