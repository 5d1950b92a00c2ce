package rod

import (
	"context"
	"time"

	"github.com/fwojciec/harvest"
)

// CountFunc returns the current number of rendered elements of interest.
type CountFunc func() (int, error)

// Sleep waits for d or until the context is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitStable polls count every s.Interval until it returns the same non-zero
// value for s.Rounds consecutive polls. A positive s.Delay caps the wait;
// reaching the cap is not an error because the page is used as rendered.
func WaitStable(ctx context.Context, count CountFunc, s harvest.Settle) error {
	interval := s.Interval
	if interval <= 0 {
		interval = harvest.DefaultSettleInterval
	}
	rounds := s.Rounds
	if rounds <= 0 {
		rounds = harvest.DefaultSettleRounds
	}

	var deadline <-chan time.Time
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last, stable := -1, 0
	for {
		n, err := count()
		if err != nil {
			return err
		}
		if n > 0 && n == last {
			stable++
			if stable >= rounds {
				return nil
			}
		} else {
			last, stable = n, 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return nil
		case <-ticker.C:
		}
	}
}
