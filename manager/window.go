package manager

import "time"

// DefaultWindowHours is how many upcoming hours the consumer is shown.
const DefaultWindowHours = 6

// NextHours returns up to n entries of the series starting at the first
// entry whose timestamp is not before the given observation time. When
// fewer than n entries remain, the remainder is returned as-is.
func NextHours(series []HourlyPoint, from time.Time, n int) []HourlyPoint {
	if n <= 0 {
		return nil
	}

	start := len(series)
	for i, point := range series {
		if !point.Time.Before(from) {
			start = i
			break
		}
	}

	end := start + n
	if end > len(series) {
		end = len(series)
	}

	return series[start:end]
}
