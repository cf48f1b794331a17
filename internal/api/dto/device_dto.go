package dto

import (
	"time"

	"github.com/spec-kit/platform-admin/internal/domain"
)

// RegisterDeviceRequest payload.
type RegisterDeviceRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Platform string `json:"platform" validate:"required,min=1,max=60"`
}

// RenameDeviceRequest payload.
type RenameDeviceRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// DeviceResponse is the device shape returned to clients.
type DeviceResponse struct {
	ID          string              `json:"id"`
	ExternalKey string              `json:"external_key"`
	OwnerID     string              `json:"owner_id"`
	Name        string              `json:"name"`
	Platform    string              `json:"platform"`
	Status      domain.DeviceStatus `json:"status"`
	LastSeenAt  *time.Time          `json:"last_seen_at"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewDeviceResponse maps a domain device.
func NewDeviceResponse(device *domain.Device) DeviceResponse {
	return DeviceResponse{
		ID:          device.ID,
		ExternalKey: device.ExternalKey,
		OwnerID:     device.OwnerID,
		Name:        device.Name,
		Platform:    device.Platform,
		Status:      device.Status,
		LastSeenAt:  device.LastSeenAt,
		CreatedAt:   device.CreatedAt,
	}
}
