package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_GetTimestampInMicroseconds(t *testing.T) {
	timer := NewTimer()

	before := time.Now().UnixMicro()
	timestamp := timer.GetTimestampInMicroseconds()
	after := time.Now().UnixMicro()

	assert.GreaterOrEqual(t, timestamp, before)
	assert.LessOrEqual(t, timestamp, after)
}

func TestTimer_ConvertMicrosecondsToMilliseconds(t *testing.T) {
	timer := NewTimer()

	assert.Equal(t, int64(1616164633241), timer.ConvertMicrosecondsToMilliseconds(1616164633241312))
	assert.Equal(t, int64(0), timer.ConvertMicrosecondsToMilliseconds(999))
}

func TestTimer_ConvertStringDateToMicroseconds(t *testing.T) {
	timer := NewTimer()

	tests := []struct {
		name     string
		date     string
		expected int64
	}{
		{name: "whole seconds", date: "2021-03-19T14:37:13Z", expected: 1616164633000000},
		{name: "fractional seconds", date: "2021-03-19T14:37:13.241312Z", expected: 1616164633241312},
		{name: "with offset", date: "2021-03-19T15:37:13+01:00", expected: 1616164633000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timestamp, err := timer.ConvertStringDateToMicroseconds(tt.date)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, timestamp)
		})
	}
}

func TestTimer_ConvertStringDateToMicroseconds_Invalid(t *testing.T) {
	timer := NewTimer()

	_, err := timer.ConvertStringDateToMicroseconds("not a date")

	require.Error(t, err)
}

func TestTimer_ConvertMicrosecondsToTime(t *testing.T) {
	timer := NewTimer()

	converted := timer.ConvertMicrosecondsToTime(1616164633241312)

	assert.Equal(t, time.Date(2021, 3, 19, 14, 37, 13, 241312000, time.UTC), converted)
}
