package mongodb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"

	"shop-admin/internal/db"
	mock_database "shop-admin/internal/db/mocks"
	"shop-admin/internal/repository"
	"shop-admin/internal/repository/mongodb"
)

func TestNotificationRepo_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("always scopes to admin-created documents", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		mockDB.EXPECT().FindMany(gomock.Any(), gomock.Eq("notifications"), gomock.Eq(bson.M{"created_by_admin": true}), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := repo.Find(ctx, repository.NotificationFilter{}, 0, 50)
		assert.NoError(t, err)
	})

	t.Run("type and audience filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		wantQuery := bson.M{
			"created_by_admin": true,
			"type":             "promo",
			"for":              repository.AudienceAllUsers,
		}
		wantOpts := db.FindOptions{
			Sort:  bson.D{{Key: "created_at", Value: -1}},
			Skip:  10,
			Limit: 20,
		}

		testNotifications := []repository.Notification{
			{ID: "notif-1", Title: "Sale", Type: "promo", For: repository.AudienceAllUsers},
		}

		mockDB.EXPECT().FindMany(gomock.Any(), gomock.Eq("notifications"), gomock.Eq(wantQuery), gomock.Eq(wantOpts), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ bson.M, _ db.FindOptions, dest any) error {
				*dest.(*[]repository.Notification) = testNotifications
				return nil
			})

		notifications, err := repo.Find(ctx, repository.NotificationFilter{
			Type: "promo",
			For:  repository.AudienceAllUsers,
		}, 10, 20)
		assert.NoError(t, err)
		assert.Equal(t, testNotifications, notifications)
	})

	t.Run("date range bounds share one created_at predicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		start, _ := time.Parse("2006-01-02", "2025-06-01")
		end, _ := time.Parse("2006-01-02", "2025-06-30")
		wantQuery := bson.M{
			"created_by_admin": true,
			"created_at":       bson.M{"$gte": start, "$lte": end},
		}

		mockDB.EXPECT().FindMany(gomock.Any(), gomock.Any(), gomock.Eq(wantQuery), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := repo.Find(ctx, repository.NotificationFilter{
			StartDate: "2025-06-01",
			EndDate:   "2025-06-30",
		}, 0, 50)
		assert.NoError(t, err)
	})

	t.Run("malformed dates are dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		mockDB.EXPECT().FindMany(gomock.Any(), gomock.Any(), gomock.Eq(bson.M{"created_by_admin": true}), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := repo.Find(ctx, repository.NotificationFilter{StartDate: "yesterday"}, 0, 50)
		assert.NoError(t, err)
	})
}

func TestNotificationRepo_GetAdminByID(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin documents read as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		mockDB.EXPECT().FindOne(gomock.Any(), gomock.Eq("notifications"), gomock.Eq(bson.M{"id": "notif-1", "created_by_admin": true}), gomock.Any()).
			Return(mongo.ErrNoDocuments)

		n, err := repo.GetAdminByID(ctx, "notif-1")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, n)
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		testNotification := repository.Notification{ID: "notif-1", Title: "Sale", CreatedByAdmin: true}

		mockDB.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ bson.M, dest any) error {
				*dest.(*repository.Notification) = testNotification
				return nil
			})

		n, err := repo.GetAdminByID(ctx, "notif-1")
		assert.NoError(t, err)
		assert.Equal(t, &testNotification, n)
	})
}

func TestNotificationRepo_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		mockDB.EXPECT().DeleteOne(gomock.Any(), gomock.Eq("notifications"), gomock.Eq(bson.M{"id": "notif-1"})).
			Return(int64(1), nil)

		err := repo.Delete(ctx, "notif-1")
		assert.NoError(t, err)
	})

	t.Run("nothing deleted reads as not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		mockDB.EXPECT().DeleteOne(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)

		err := repo.Delete(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().DeleteOne(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), expectedErr)

		err := repo.Delete(ctx, "notif-1")
		assert.Equal(t, expectedErr, err)
	})
}

func TestNotificationRepo_TypeCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("groups counts by type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		mockDB.EXPECT().Aggregate(gomock.Any(), gomock.Eq("notifications"), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ mongo.Pipeline, dest any) error {
				rows := dest.(*[]struct {
					Type  string `bson:"_id"`
					Count int64  `bson:"count"`
				})
				*rows = []struct {
					Type  string `bson:"_id"`
					Count int64  `bson:"count"`
				}{
					{Type: "promo", Count: 3},
					{Type: "system", Count: 7},
				}
				return nil
			})

		counts, err := repo.TypeCounts(ctx)
		assert.NoError(t, err)
		assert.Equal(t, map[string]int64{"promo": 3, "system": 7}, counts)
	})

	t.Run("aggregation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDatabase(ctrl)
		repo := mongodb.NewNotificationRepo(mockDB)

		expectedErr := errors.New("aggregation error")
		mockDB.EXPECT().Aggregate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		counts, err := repo.TypeCounts(ctx)
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, counts)
	})
}
