package yahoo

import "time"

// DailyClose is a single daily close observation as returned by the provider.
type DailyClose struct {
	Date  time.Time
	Close float64
}
