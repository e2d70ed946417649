package mongodb

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"shop-admin/internal/db"
	"shop-admin/internal/repository"
)

const ordersCollection = "orders"

type OrderRepo struct {
	db db.Database
}

func NewOrderRepo(database db.Database) *OrderRepo {
	return &OrderRepo{db: database}
}

// BuildOrderQuery turns raw filter values into a Mongo query. Each active
// dimension contributes an independent predicate; malformed date and numeric
// values are logged and dropped so a bad filter never aborts the listing.
func BuildOrderQuery(f repository.OrderFilter) bson.M {
	query := bson.M{}

	if f.Status != "" && f.Status != "all" {
		query["order_status"] = f.Status
	}

	var conds []bson.M

	if f.FromDate != "" {
		if t, err := parseFilterTime(f.FromDate); err == nil {
			conds = append(conds, bson.M{"created_at": bson.M{"$gte": t}})
		} else {
			zap.L().Warn("invalid from_date filter, dropping", zap.String("from_date", f.FromDate))
		}
	}

	if f.ToDate != "" {
		if t, err := parseFilterTime(f.ToDate); err == nil {
			conds = append(conds, bson.M{"created_at": bson.M{"$lte": t}})
		} else {
			zap.L().Warn("invalid to_date filter, dropping", zap.String("to_date", f.ToDate))
		}
	}

	if f.MinAmount != "" {
		if v, err := strconv.ParseFloat(f.MinAmount, 64); err == nil {
			conds = append(conds, bson.M{"total_amount": bson.M{"$gte": v}})
		} else {
			zap.L().Warn("invalid min_amount filter, dropping", zap.String("min_amount", f.MinAmount))
		}
	}

	if f.MaxAmount != "" {
		if v, err := strconv.ParseFloat(f.MaxAmount, 64); err == nil {
			conds = append(conds, bson.M{"total_amount": bson.M{"$lte": v}})
		} else {
			zap.L().Warn("invalid max_amount filter, dropping", zap.String("max_amount", f.MaxAmount))
		}
	}

	switch len(conds) {
	case 0:
	case 1:
		for k, v := range conds[0] {
			query[k] = v
		}
	default:
		query["$and"] = conds
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		term = strings.TrimPrefix(term, "#")
		query["id"] = primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	}

	return query
}

func parseFilterTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (r *OrderRepo) Find(ctx context.Context, filter repository.OrderFilter, skip, limit int64) ([]repository.Order, error) {
	var orders []repository.Order
	err := r.db.FindMany(ctx, ordersCollection, BuildOrderQuery(filter), db.FindOptions{
		Sort:  bson.D{{Key: "created_at", Value: -1}},
		Skip:  skip,
		Limit: limit,
	}, &orders)
	return orders, err
}

func (r *OrderRepo) Count(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	return r.db.CountDocuments(ctx, ordersCollection, BuildOrderQuery(filter))
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.FindOne(ctx, ordersCollection, bson.M{"id": id}, &order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus is a single conditional write keyed by the external order ID:
// the status fields are set and the history entry appended atomically.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status, message string, entry repository.StatusChange) error {
	matched, err := r.db.UpdateOne(ctx, ordersCollection, bson.M{"id": id}, bson.M{
		"$set": bson.M{
			"order_status":   status,
			"updated_at":     entry.ChangedAt,
			"status_message": message,
		},
		"$push": bson.M{"status_change_history": entry},
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *OrderRepo) AssignPartner(ctx context.Context, id, partnerID, message string, entry repository.StatusChange) error {
	matched, err := r.db.UpdateOne(ctx, ordersCollection, bson.M{"id": id}, bson.M{
		"$set": bson.M{
			"delivery_partner": partnerID,
			"order_status":     "assigned",
			"assigned_at":      entry.ChangedAt,
			"updated_at":       entry.ChangedAt,
			"status_message":   message,
		},
		"$push": bson.M{"status_change_history": entry},
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
