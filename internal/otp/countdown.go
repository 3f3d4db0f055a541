package otp

import "time"

// UntilNext returns how long the code for the given period remains valid
// at now. The result is always in (0, period].
func UntilNext(period int, now time.Time) time.Duration {
	if period <= 0 {
		period = DefaultPeriod
	}
	window := time.Duration(period) * time.Second
	elapsed := time.Duration(now.UnixMilli()%window.Milliseconds()) * time.Millisecond
	return window - elapsed
}
