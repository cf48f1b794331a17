package domain

import "time"

// APILog is one recorded API request, kept for the traffic widgets.
type APILog struct {
	ID         int64
	Method     string
	Path       string
	StatusCode int
	LatencyMS  int64
	CallerID   *string
	CreatedAt  time.Time
}
