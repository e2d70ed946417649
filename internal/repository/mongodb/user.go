package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shop-admin/internal/db"
	"shop-admin/internal/repository"
)

const usersCollection = "users"

type UserRepo struct {
	db db.Database
}

func NewUserRepo(database db.Database) *UserRepo {
	return &UserRepo{db: database}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	var user repository.User
	err := r.db.FindOne(ctx, usersCollection, bson.M{"id": id}, &user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDs resolves a batch of external user IDs in one query. Missing IDs
// are simply absent from the result map.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]repository.User, error) {
	result := make(map[string]repository.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []repository.User
	err := r.db.FindMany(ctx, usersCollection, bson.M{"id": bson.M{"$in": ids}}, db.FindOptions{}, &users)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// GetActivePartner returns the user only when it is an active delivery
// partner; anything else reads as not found.
func (r *UserRepo) GetActivePartner(ctx context.Context, id string) (*repository.User, error) {
	var user repository.User
	err := r.db.FindOne(ctx, usersCollection, bson.M{
		"id":        id,
		"role":      "delivery_partner",
		"is_active": true,
	}, &user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) CountCustomers(ctx context.Context, filter repository.UserFilter) (int64, error) {
	query := bson.M{"role": "customer"}
	if filter.ActiveOnly {
		query["is_active"] = true
	}
	if filter.VerifiedOnly {
		query["is_verified"] = true
	}
	return r.db.CountDocuments(ctx, usersCollection, query)
}
