package domain

import "time"

// DeviceStatus enumerates connectivity states tracked by presence sync.
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "ONLINE"
	DeviceStatusOffline DeviceStatus = "OFFLINE"
	DeviceStatusStale   DeviceStatus = "STALE"
)

// Device is an enrolled customer device.
type Device struct {
	ID          string
	ExternalKey string
	OwnerID     string
	Name        string
	Platform    string
	Status      DeviceStatus
	LastSeenAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SeenWithin reports whether the device checked in inside the cutoff window.
func (d *Device) SeenWithin(cutoff time.Duration, now time.Time) bool {
	if d.LastSeenAt == nil {
		return false
	}
	return now.Sub(*d.LastSeenAt) <= cutoff
}
