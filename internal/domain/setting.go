package domain

import "time"

// Setting is a keyed configuration value editable from the admin panel.
type Setting struct {
	Key       string
	Group     string
	Value     string
	UpdatedAt time.Time
}
