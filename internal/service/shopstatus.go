package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shop-admin/internal/metrics"
	"shop-admin/internal/repository"
)

const shopStatusCacheKey = "shop_status"

type ShopStatusService struct {
	repo        ShopStatusRepository
	cache       Cache
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewShopStatusService(repo ShopStatusRepository, cache Cache, broadcaster Broadcaster, logger *zap.Logger) *ShopStatusService {
	return &ShopStatusService{
		repo:        repo,
		cache:       cache,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// ShopStatusChanged is the payload fanned out to every connected session
// after a successful update.
type ShopStatusChanged struct {
	Type       string     `json:"type"`
	IsOpen     bool       `json:"is_open"`
	ReopenTime *time.Time `json:"reopen_time"`
	Reason     string     `json:"reason,omitempty"`
	Message    string     `json:"message"`
}

// Get reads the singleton status, creating the default open document when
// the collection is still empty.
func (s *ShopStatusService) Get(ctx context.Context) (*repository.ShopStatus, error) {
	status, err := s.repo.Get(ctx)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, err
	}

	s.logger.Info("no shop status found, creating default (open)")
	status = &repository.ShopStatus{
		IsOpen:    true,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: "system",
	}
	if err := s.repo.Insert(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Update validates and writes the singleton, then fires the cache
// invalidation and the session broadcast. Both side effects are best-effort:
// their failures are logged and never surfaced to the caller.
func (s *ShopStatusService) Update(ctx context.Context, req UpdateShopStatusRequest, actor string) (*repository.ShopStatus, error) {
	if req.IsOpen == nil {
		return nil, validationErr("is_open field is required")
	}

	var reopenTime *time.Time
	if req.ReopenTime != "" {
		t, err := time.Parse(time.RFC3339, req.ReopenTime)
		if err != nil {
			return nil, validationErr("Invalid datetime format for reopen_time")
		}
		if !t.After(time.Now().UTC()) {
			return nil, validationErr("Reopen time must be in the future")
		}
		utc := t.UTC()
		reopenTime = &utc
	}

	status := &repository.ShopStatus{
		IsOpen:     *req.IsOpen,
		ReopenTime: reopenTime,
		Reason:     req.Reason,
		UpdatedAt:  time.Now().UTC(),
		UpdatedBy:  actor,
	}

	if err := s.repo.Upsert(ctx, status); err != nil {
		return nil, err
	}
	metrics.ShopStatusUpdatesTotal.Inc()

	if err := s.cache.Delete(ctx, shopStatusCacheKey); err != nil {
		s.logger.Warn("shop status cache invalidation failed", zap.Error(err))
	}

	s.broadcaster.Broadcast(ShopStatusChanged{
		Type:       "shop_status_changed",
		IsOpen:     status.IsOpen,
		ReopenTime: status.ReopenTime,
		Reason:     status.Reason,
		Message:    fmt.Sprintf("Shop status changed by %s", actor),
	})

	openState := "closed"
	if status.IsOpen {
		openState = "open"
	}
	s.logger.Info("shop status updated",
		zap.String("state", openState), zap.String("updated_by", actor))

	return status, nil
}
