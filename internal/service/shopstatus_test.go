package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"shop-admin/internal/repository"
	"shop-admin/internal/service"
	mock_service "shop-admin/internal/service/mocks"
)

func boolPtr(v bool) *bool { return &v }

func TestShopStatusService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		stored := &repository.ShopStatus{IsOpen: false, Reason: "Festival", UpdatedBy: "admin@shop.test"}
		mockRepo.EXPECT().Get(gomock.Any()).Return(stored, nil)

		status, err := svc.Get(ctx)
		assert.NoError(t, err)
		assert.Equal(t, stored, status)
	})

	t.Run("creates default open status when collection is empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		mockRepo.EXPECT().Get(gomock.Any()).Return(nil, repository.ErrObjectNotFound)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, status *repository.ShopStatus) error {
				assert.True(t, status.IsOpen)
				assert.Equal(t, "system", status.UpdatedBy)
				return nil
			})

		status, err := svc.Get(ctx)
		assert.NoError(t, err)
		assert.True(t, status.IsOpen)
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		expectedErr := errors.New("database error")
		mockRepo.EXPECT().Get(gomock.Any()).Return(nil, expectedErr)

		status, err := svc.Get(ctx)
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, status)
	})
}

func TestShopStatusService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("is_open is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		status, err := svc.Update(ctx, service.UpdateShopStatusRequest{}, "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "is_open field is required", validationErr.Message)
		assert.Nil(t, status)
	})

	t.Run("malformed reopen time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		status, err := svc.Update(ctx, service.UpdateShopStatusRequest{
			IsOpen:     boolPtr(false),
			ReopenTime: "tomorrow morning",
		}, "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Invalid datetime format for reopen_time", validationErr.Message)
		assert.Nil(t, status)
	})

	t.Run("past reopen time writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
		status, err := svc.Update(ctx, service.UpdateShopStatusRequest{
			IsOpen:     boolPtr(false),
			ReopenTime: past,
		}, "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Reopen time must be in the future", validationErr.Message)
		assert.Nil(t, status)
	})

	t.Run("writes status, invalidates cache and broadcasts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		reopen := time.Now().UTC().Add(4 * time.Hour).Truncate(time.Second)

		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, status *repository.ShopStatus) error {
				assert.False(t, status.IsOpen)
				assert.Equal(t, "Festival", status.Reason)
				assert.Equal(t, "admin@shop.test", status.UpdatedBy)
				assert.NotNil(t, status.ReopenTime)
				assert.True(t, status.ReopenTime.Equal(reopen))
				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Eq("shop_status")).Return(nil)
		mockBroadcaster.EXPECT().Broadcast(gomock.Any()).
			Do(func(v any) {
				payload, ok := v.(service.ShopStatusChanged)
				assert.True(t, ok)
				assert.Equal(t, "shop_status_changed", payload.Type)
				assert.False(t, payload.IsOpen)
				assert.Equal(t, "Festival", payload.Reason)
				assert.Equal(t, "Shop status changed by admin@shop.test", payload.Message)
			})

		status, err := svc.Update(ctx, service.UpdateShopStatusRequest{
			IsOpen:     boolPtr(false),
			ReopenTime: reopen.Format(time.RFC3339),
			Reason:     "Festival",
		}, "admin@shop.test")
		assert.NoError(t, err)
		assert.False(t, status.IsOpen)
	})

	t.Run("cache invalidation failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		mockBroadcaster.EXPECT().Broadcast(gomock.Any())

		status, err := svc.Update(ctx, service.UpdateShopStatusRequest{IsOpen: boolPtr(true)}, "admin@shop.test")
		assert.NoError(t, err)
		assert.True(t, status.IsOpen)
	})

	t.Run("upsert error skips side effects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mock_service.NewMockShopStatusRepository(ctrl)
		mockCache := mock_service.NewMockCache(ctrl)
		mockBroadcaster := mock_service.NewMockBroadcaster(ctrl)
		svc := service.NewShopStatusService(mockRepo, mockCache, mockBroadcaster, zap.NewNop())

		expectedErr := errors.New("database error")
		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(expectedErr)

		status, err := svc.Update(ctx, service.UpdateShopStatusRequest{IsOpen: boolPtr(true)}, "admin@shop.test")
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, status)
	})
}
