package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"shop-admin/internal/repository"
	"shop-admin/internal/service"
	mock_service "shop-admin/internal/service/mocks"
)

func displayTime(t time.Time) string {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+30*60)
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves targeted recipients", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		testNotifications := []repository.Notification{
			{
				ID:           "notif-1",
				UserID:       "user-1",
				Title:        "Order update",
				Type:         "order",
				For:          repository.AudienceSpecificUser,
				CreatedAtIST: "2025-06-01 17:30:00",
				CreatedBy:    "admin@shop.test",
			},
			{
				ID:     "notif-2",
				UserID: "user-gone",
				Title:  "Old update",
				For:    repository.AudienceSpecificUser,
			},
		}

		mockNotifications.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Eq(int64(0)), gomock.Eq(int64(50))).
			Return(testNotifications, nil)
		mockNotifications.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(2), nil)
		mockUsers.EXPECT().GetByID(gomock.Any(), gomock.Eq("user-1")).
			Return(&repository.User{ID: "user-1", Name: "Asha", Email: "asha@shop.test"}, nil)
		mockUsers.EXPECT().GetByID(gomock.Any(), gomock.Eq("user-gone")).
			Return(nil, repository.ErrObjectNotFound)

		page, err := svc.List(ctx, service.ListNotificationsRequest{})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Len(t, page.Notifications, 2)

		first := page.Notifications[0]
		assert.Equal(t, "Asha", first.UserName)
		assert.Equal(t, "asha@shop.test", first.UserEmail)
		assert.Equal(t, "2025-06-01 17:30:00", first.CreatedAt)
		assert.Equal(t, "admin@shop.test", first.CreatedBy)

		second := page.Notifications[1]
		assert.Equal(t, "User Deleted", second.UserName)
		assert.Equal(t, "N/A", second.UserEmail)
		assert.Equal(t, "Unknown", second.CreatedBy)
	})

	t.Run("legacy rows fall back to converted display time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		testNotifications := []repository.Notification{
			{ID: "notif-1", UserID: "user-1", For: repository.AudienceSpecificUser, CreatedAt: created},
		}

		mockNotifications.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(testNotifications, nil)
		mockNotifications.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(1), nil)
		mockUsers.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(&repository.User{ID: "user-1", Name: "Asha"}, nil)

		page, err := svc.List(ctx, service.ListNotificationsRequest{})
		assert.NoError(t, err)
		assert.Equal(t, displayTime(created), page.Notifications[0].CreatedAt)
	})

	t.Run("broadcast rows carry an audience snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		testNotifications := []repository.Notification{
			{ID: "notif-1", Title: "Sale", For: repository.AudienceAllUsers, CreatedAtIST: "2025-06-01 17:30:00"},
		}

		mockNotifications.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(testNotifications, nil)
		mockNotifications.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(1), nil)
		mockUsers.EXPECT().CountCustomers(gomock.Any(), gomock.Eq(repository.UserFilter{ActiveOnly: true})).
			Return(int64(42), nil)

		page, err := svc.List(ctx, service.ListNotificationsRequest{})
		assert.NoError(t, err)

		row := page.Notifications[0]
		assert.Equal(t, "All Users", row.UserName)
		assert.Equal(t, "Broadcast", row.UserEmail)
		assert.NotNil(t, row.RecipientCount)
		assert.Equal(t, int64(42), *row.RecipientCount)
	})
}

func TestNotificationService_SendToUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		_, err := svc.SendToUser(ctx, service.SendNotificationRequest{UserID: "user-1"}, "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("user not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockUsers.EXPECT().GetByID(gomock.Any(), gomock.Eq("user-1")).
			Return(nil, repository.ErrObjectNotFound)

		_, err := svc.SendToUser(ctx, service.SendNotificationRequest{
			UserID:  "user-1",
			Title:   "Hi",
			Message: "Hello",
		}, "admin@shop.test")

		var notFoundErr *service.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "User not found", notFoundErr.Message)
	})

	t.Run("stores an admin-stamped document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockUsers.EXPECT().GetByID(gomock.Any(), gomock.Eq("user-1")).
			Return(&repository.User{ID: "user-1", Name: "Asha"}, nil)
		mockNotifications.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *repository.Notification) error {
				assert.NotEmpty(t, n.ID)
				assert.Equal(t, "user-1", n.UserID)
				assert.Equal(t, "system", n.Type)
				assert.Equal(t, repository.AudienceSpecificUser, n.For)
				assert.True(t, n.CreatedByAdmin)
				assert.Equal(t, "admin@shop.test", n.CreatedBy)
				assert.Equal(t, "Asia/Kolkata", n.Timezone)
				assert.Equal(t, displayTime(n.CreatedAt), n.CreatedAtIST)
				assert.False(t, n.Read)
				return nil
			})

		message, err := svc.SendToUser(ctx, service.SendNotificationRequest{
			UserID:  "user-1",
			Title:   "Hi",
			Message: "Hello",
		}, "admin@shop.test")
		assert.NoError(t, err)
		assert.Equal(t, "Notification sent to Asha", message)
	})
}

func TestNotificationService_Broadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		_, err := svc.Broadcast(ctx, service.BroadcastNotificationRequest{Title: "Sale"}, "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("empty audience writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockUsers.EXPECT().CountCustomers(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		result, err := svc.Broadcast(ctx, service.BroadcastNotificationRequest{
			Title:   "Sale",
			Message: "Everything half off",
		}, "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "No users found matching the criteria", validationErr.Message)
		assert.Nil(t, result)
	})

	t.Run("stores a single document with the audience snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockUsers.EXPECT().CountCustomers(gomock.Any(), gomock.Eq(repository.UserFilter{ActiveOnly: true})).
			Return(int64(42), nil)
		mockNotifications.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *repository.Notification) error {
				assert.Equal(t, repository.AudienceAllUsers, n.For)
				assert.Equal(t, int64(42), n.TargetUserCount)
				assert.Empty(t, n.UserID)
				assert.True(t, n.CreatedByAdmin)
				return nil
			})

		result, err := svc.Broadcast(ctx, service.BroadcastNotificationRequest{
			Title:   "Sale",
			Message: "Everything half off",
		}, "admin@shop.test")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), result.UserCount)
		assert.Equal(t, "Notification will be shown to 42 users", result.Message)
	})

	t.Run("explicit filter overrides the active-only default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		activeOnly := false
		mockUsers.EXPECT().CountCustomers(gomock.Any(), gomock.Eq(repository.UserFilter{ActiveOnly: false, VerifiedOnly: true})).
			Return(int64(7), nil)
		mockNotifications.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.Broadcast(ctx, service.BroadcastNotificationRequest{
			Title:   "Sale",
			Message: "Everything half off",
			UserFilter: &service.BroadcastUserFilter{
				ActiveOnly:   &activeOnly,
				VerifiedOnly: true,
			},
		}, "admin@shop.test")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), result.UserCount)
	})
}

func TestNotificationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		err := svc.Delete(ctx, "", "admin@shop.test")

		var validationErr *service.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("not admin-created reads as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockNotifications.EXPECT().GetAdminByID(gomock.Any(), gomock.Eq("notif-1")).
			Return(nil, repository.ErrObjectNotFound)

		err := svc.Delete(ctx, "notif-1", "admin@shop.test")

		var notFoundErr *service.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "Notification not found or not authorized", notFoundErr.Message)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockNotifications.EXPECT().GetAdminByID(gomock.Any(), gomock.Eq("notif-1")).
			Return(&repository.Notification{ID: "notif-1", CreatedByAdmin: true}, nil)
		mockNotifications.EXPECT().Delete(gomock.Any(), gomock.Eq("notif-1")).Return(nil)

		err := svc.Delete(ctx, "notif-1", "admin@shop.test")
		assert.NoError(t, err)
	})
}

func TestNotificationService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates all counters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockNotifications := mock_service.NewMockNotificationRepository(ctrl)
		mockUsers := mock_service.NewMockUserRepository(ctrl)
		svc := service.NewNotificationService(mockNotifications, mockUsers, zap.NewNop())

		mockNotifications.EXPECT().CountAdmin(gomock.Any()).Return(int64(10), nil)
		mockNotifications.EXPECT().CountByAudience(gomock.Any(), gomock.Eq(repository.AudienceAllUsers)).Return(int64(3), nil)
		mockNotifications.EXPECT().CountByAudience(gomock.Any(), gomock.Eq(repository.AudienceSpecificUser)).Return(int64(7), nil)
		mockNotifications.EXPECT().CountTargetedByRead(gomock.Any(), gomock.Eq(false)).Return(int64(5), nil)
		mockNotifications.EXPECT().CountTargetedByRead(gomock.Any(), gomock.Eq(true)).Return(int64(2), nil)
		mockNotifications.EXPECT().TypeCounts(gomock.Any()).Return(map[string]int64{"promo": 3, "system": 7}, nil)

		stats, err := svc.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), stats.Total)
		assert.Equal(t, int64(3), stats.Broadcast)
		assert.Equal(t, int64(7), stats.SingleUser)
		assert.Equal(t, int64(5), stats.Unread)
		assert.Equal(t, int64(2), stats.Read)
		assert.Equal(t, map[string]int64{"promo": 3, "system": 7}, stats.ByType)
	})
}
