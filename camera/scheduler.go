package camera

import "time"

// TickerScheduler schedules frames on a wall-clock interval. Used by the
// serve binary; hosts with a real frame loop supply their own Scheduler.
type TickerScheduler struct {
	Interval time.Duration
}

// Schedule runs tick once after the interval. The returned cancel stops the
// pending frame; cancelling after the frame fired is a no-op.
func (s TickerScheduler) Schedule(tick func()) (cancel func()) {
	interval := s.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	t := time.AfterFunc(interval, tick)
	return func() { t.Stop() }
}
