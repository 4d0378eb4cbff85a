package dates

import (
	"time"
)

func Now() time.Time {
	return time.Now().UTC()
}

func NowPlus(d time.Duration) time.Time {
	return time.Now().UTC().Add(d)
}
