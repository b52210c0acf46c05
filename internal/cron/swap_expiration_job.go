package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftline/shiftline-backend/pkg/logger"
)

// swapExpirer is the slice of the swaps service the job needs.
type swapExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// SwapExpirationJobParams configure the swap expiration job.
type SwapExpirationJobParams struct {
	Logger *logger.Logger
	Swaps  swapExpirer
	Now    func() time.Time
}

// NewSwapExpirationJob builds the job that times out overdue pending swap
// requests. Each expiry is conditional on the row still being pending, so
// overlapping runs and racing responses are safe.
func NewSwapExpirationJob(params SwapExpirationJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Swaps == nil {
		return nil, fmt.Errorf("swaps service required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &swapExpirationJob{
		logg:  params.Logger,
		swaps: params.Swaps,
		now:   now,
	}, nil
}

type swapExpirationJob struct {
	logg  *logger.Logger
	swaps swapExpirer
	now   func() time.Time
}

func (j *swapExpirationJob) Name() string { return "swap-expiration" }

func (j *swapExpirationJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	expired, err := j.swaps.ExpireStale(ctx, now)
	if err != nil {
		return fmt.Errorf("swap expiration: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"as_of":        now,
		"rows_expired": expired,
	})
	j.logg.Info(logCtx, "swap expiration sweep complete")
	return nil
}
