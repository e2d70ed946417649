package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"shop-admin/internal/db"
	"shop-admin/internal/repository"
)

const notificationsCollection = "notifications"

type NotificationRepo struct {
	db db.Database
}

func NewNotificationRepo(database db.Database) *NotificationRepo {
	return &NotificationRepo{db: database}
}

// buildNotificationQuery always scopes to admin-created documents; the
// customer-facing app writes into the same collection.
func buildNotificationQuery(f repository.NotificationFilter) bson.M {
	query := bson.M{"created_by_admin": true}

	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.For != "" {
		query["for"] = f.For
	}

	created := bson.M{}
	if f.StartDate != "" {
		if t, err := parseFilterTime(f.StartDate); err == nil {
			created["$gte"] = t
		} else {
			zap.L().Warn("invalid start_date filter, dropping", zap.String("start_date", f.StartDate))
		}
	}
	if f.EndDate != "" {
		if t, err := parseFilterTime(f.EndDate); err == nil {
			created["$lte"] = t
		} else {
			zap.L().Warn("invalid end_date filter, dropping", zap.String("end_date", f.EndDate))
		}
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	return query
}

func (r *NotificationRepo) Find(ctx context.Context, filter repository.NotificationFilter, skip, limit int64) ([]repository.Notification, error) {
	var notifications []repository.Notification
	err := r.db.FindMany(ctx, notificationsCollection, buildNotificationQuery(filter), db.FindOptions{
		Sort:  bson.D{{Key: "created_at", Value: -1}},
		Skip:  skip,
		Limit: limit,
	}, &notifications)
	return notifications, err
}

func (r *NotificationRepo) Count(ctx context.Context, filter repository.NotificationFilter) (int64, error) {
	return r.db.CountDocuments(ctx, notificationsCollection, buildNotificationQuery(filter))
}

func (r *NotificationRepo) Insert(ctx context.Context, n *repository.Notification) error {
	return r.db.InsertOne(ctx, notificationsCollection, n)
}

// GetAdminByID only matches admin-created notifications, so a document
// created by any other actor reads as not found.
func (r *NotificationRepo) GetAdminByID(ctx context.Context, id string) (*repository.Notification, error) {
	var n repository.Notification
	err := r.db.FindOne(ctx, notificationsCollection, bson.M{"id": id, "created_by_admin": true}, &n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	deleted, err := r.db.DeleteOne(ctx, notificationsCollection, bson.M{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *NotificationRepo) CountAdmin(ctx context.Context) (int64, error) {
	return r.db.CountDocuments(ctx, notificationsCollection, bson.M{"created_by_admin": true})
}

func (r *NotificationRepo) CountByAudience(ctx context.Context, audience string) (int64, error) {
	return r.db.CountDocuments(ctx, notificationsCollection, bson.M{
		"created_by_admin": true,
		"for":              audience,
	})
}

// CountTargetedByRead partitions targeted notifications by read state;
// broadcast documents carry no meaningful read flag.
func (r *NotificationRepo) CountTargetedByRead(ctx context.Context, read bool) (int64, error) {
	return r.db.CountDocuments(ctx, notificationsCollection, bson.M{
		"created_by_admin": true,
		"for":              repository.AudienceSpecificUser,
		"read":             read,
	})
}

func (r *NotificationRepo) TypeCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_by_admin": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"count": bson.M{"$sum": 1},
		}}},
	}

	var rows []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := r.db.Aggregate(ctx, notificationsCollection, pipeline, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}
