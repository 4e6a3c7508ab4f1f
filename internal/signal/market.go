package signal

import "time"

// MarketOpen reports whether the regular forex market is trading at the given
// instant. The market runs continuously from Sunday 22:00 UTC to Friday
// 22:00 UTC.
//
// The pair argument is reserved for per-instrument calendars and is currently
// ignored: one global forex week applies to every instrument.
func MarketOpen(pair string, now time.Time) bool {
	_ = pair

	utc := now.UTC()
	switch utc.Weekday() {
	case time.Friday:
		return utc.Hour() < 22
	case time.Saturday:
		return false
	case time.Sunday:
		return utc.Hour() >= 22
	}
	return true
}
