package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/config"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
	apperrors "github.com/spec-kit/platform-admin/pkg/util"
)

// DeviceService manages device enrollment and heartbeats. Heartbeats update
// both the database row and a short-lived presence key in Redis so the
// presence-sync task can reconcile status without scanning the whole table.
type DeviceService struct {
	devices repository.DeviceRepository
	redis   *redis.Client
	cfg     config.ScheduleConfig
	logger  *zap.Logger
}

// NewDeviceService constructs the service.
func NewDeviceService(devices repository.DeviceRepository, redisClient *redis.Client, cfg config.ScheduleConfig, logger *zap.Logger) *DeviceService {
	return &DeviceService{devices: devices, redis: redisClient, cfg: cfg, logger: logger}
}

func presenceKey(deviceID string) string {
	return fmt.Sprintf("presence:%s", deviceID)
}

// Register enrolls a device for the owner. New devices start OFFLINE until
// their first heartbeat.
func (s *DeviceService) Register(ctx context.Context, ownerID, name, platform string) (*domain.Device, error) {
	device := &domain.Device{
		ExternalKey: uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Platform:    platform,
		Status:      domain.DeviceStatusOffline,
	}
	if err := s.devices.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// Get loads a device, enforcing ownership unless the caller is an admin.
func (s *DeviceService) Get(ctx context.Context, principalID string, isAdmin bool, id string) (*domain.Device, error) {
	device, err := s.devices.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("device", map[string]any{"id": id})
		}
		return nil, err
	}
	if !isAdmin && device.OwnerID != principalID {
		return nil, apperrors.NewForbidden("device belongs to another account")
	}
	return device, nil
}

// List returns devices matching the filter.
func (s *DeviceService) List(ctx context.Context, filter repository.DeviceFilter) ([]domain.Device, error) {
	return s.devices.ListWithFilter(ctx, filter)
}

// ListForOwner returns the caller's own devices.
func (s *DeviceService) ListForOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Device, error) {
	return s.devices.ListWithFilter(ctx, repository.DeviceFilter{OwnerID: &ownerID, Limit: limit, Offset: offset})
}

// Heartbeat records a device check-in: the row is touched, status flips to
// ONLINE, and a presence key with the stale cutoff as TTL is refreshed.
func (s *DeviceService) Heartbeat(ctx context.Context, ownerID, id string) error {
	device, err := s.Get(ctx, ownerID, false, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.devices.TouchLastSeen(ctx, device.ID, now); err != nil {
		return err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, presenceKey(device.ID), now.Format(time.RFC3339), s.cfg.StaleDeviceCutoff()).Err(); err != nil {
			s.logger.Warn("presence key refresh failed", zap.String("device_id", device.ID), zap.Error(err))
		}
	}
	return nil
}

// Rename updates the device display name.
func (s *DeviceService) Rename(ctx context.Context, principalID string, isAdmin bool, id, name string) (*domain.Device, error) {
	device, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	device.Name = name
	device.UpdatedAt = time.Now().UTC()
	if err := s.devices.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// Remove deletes a device and drops its presence key.
func (s *DeviceService) Remove(ctx context.Context, principalID string, isAdmin bool, id string) error {
	device, err := s.Get(ctx, principalID, isAdmin, id)
	if err != nil {
		return err
	}
	if err := s.devices.Delete(ctx, device.ID); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, presenceKey(device.ID)).Err(); err != nil {
			s.logger.Warn("presence key delete failed", zap.String("device_id", device.ID), zap.Error(err))
		}
	}
	return nil
}
