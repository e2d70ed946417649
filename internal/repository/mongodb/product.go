package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"shop-admin/internal/db"
	"shop-admin/internal/repository"
)

const productsCollection = "products"

type ProductRepo struct {
	db db.Database
}

func NewProductRepo(database db.Database) *ProductRepo {
	return &ProductRepo{db: database}
}

func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]repository.Product, error) {
	result := make(map[string]repository.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []repository.Product
	err := r.db.FindMany(ctx, productsCollection, bson.M{"id": bson.M{"$in": ids}}, db.FindOptions{}, &products)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}
