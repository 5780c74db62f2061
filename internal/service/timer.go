package service

import (
	"fmt"
	"time"
)

const microsecondsInASecond int64 = 1_000_000

// realTimer is the wall-clock implementation of [Timer].
type realTimer struct{}

// NewTimer constructs the wall-clock [Timer].
func NewTimer() Timer {
	return &realTimer{}
}

func (t *realTimer) GetTimestampInMicroseconds() int64 {
	return time.Now().UnixMicro()
}

func (t *realTimer) ConvertMicrosecondsToMilliseconds(timestamp int64) int64 {
	return timestamp / 1000
}

// ConvertStringDateToMicroseconds accepts RFC3339 with or without fractional
// seconds, the two forms clients are known to submit.
func (t *realTimer) ConvertStringDateToMicroseconds(date string) (int64, error) {
	parsed, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return 0, fmt.Errorf("error parsing date %q: %w", date, err)
	}

	return parsed.UnixMicro(), nil
}

func (t *realTimer) ConvertMicrosecondsToTime(timestamp int64) time.Time {
	return time.UnixMicro(timestamp).UTC()
}
