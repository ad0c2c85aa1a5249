package timer

import (
	"context"
	"fmt"
	"time"
)

// RefreshInterval определяет, через сколько обновить отсчет при заданном остатке времени
type RefreshInterval func(remaining time.Duration) time.Duration

// DefaultRefreshInterval обновляет отсчет раз в 3 секунды, а в последние 10 секунд - каждую секунду
func DefaultRefreshInterval(remaining time.Duration) time.Duration {
	if remaining <= 10*time.Second {
		return time.Second
	}
	return 3 * time.Second
}

// Countdown периодически вызывает tick с оставшимся временем до дедлайна.
// Отсчет носит только информационный характер: истечение времени обрабатывает движок попыток.
type Countdown struct {
	interval RefreshInterval
	now      func() time.Time
}

// NewCountdown создает отсчет. interval может быть nil.
func NewCountdown(interval RefreshInterval) *Countdown {
	if interval == nil {
		interval = DefaultRefreshInterval
	}
	return &Countdown{interval: interval, now: time.Now}
}

// Run блокируется до истечения дедлайна, отмены ctx или ошибки tick
func (c *Countdown) Run(ctx context.Context, deadline time.Time, tick func(remaining time.Duration) error) error {
	for {
		remaining := deadline.Sub(c.now())
		if remaining <= 0 {
			return nil
		}

		wait := c.interval(remaining)
		if wait > remaining {
			wait = remaining
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}

		remaining = deadline.Sub(c.now())
		if remaining <= 0 {
			return nil
		}
		if err := tick(remaining); err != nil {
			return err
		}
	}
}

// Format возвращает остаток времени в виде MM:SS
func Format(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
