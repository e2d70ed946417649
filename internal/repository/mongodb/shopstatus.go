package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shop-admin/internal/db"
	"shop-admin/internal/repository"
)

const shopStatusCollection = "shop_status"

type ShopStatusRepo struct {
	db db.Database
}

func NewShopStatusRepo(database db.Database) *ShopStatusRepo {
	return &ShopStatusRepo{db: database}
}

func (r *ShopStatusRepo) Get(ctx context.Context) (*repository.ShopStatus, error) {
	var status repository.ShopStatus
	err := r.db.FindOne(ctx, shopStatusCollection, bson.M{}, &status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *ShopStatusRepo) Insert(ctx context.Context, status *repository.ShopStatus) error {
	return r.db.InsertOne(ctx, shopStatusCollection, status)
}

// Upsert replaces the singleton document in place, creating it when the
// collection is still empty.
func (r *ShopStatusRepo) Upsert(ctx context.Context, status *repository.ShopStatus) error {
	return r.db.UpsertOne(ctx, shopStatusCollection, bson.M{}, bson.M{"$set": status})
}
