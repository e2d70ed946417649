//go:generate mockgen -source ./db.go -destination=./mocks/db.go -package=mock_database
package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FindOptions carries the cursor modifiers supported by FindMany.
// Zero values mean "not set".
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Database is the generic document-store surface the repositories run on.
// Filters and updates use MongoDB operator semantics.
type Database interface {
	FindOne(ctx context.Context, collection string, filter bson.M, dest interface{}) error
	FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, dest interface{}) error
	CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline, dest interface{}) error
	InsertOne(ctx context.Context, collection string, doc interface{}) error
	UpdateOne(ctx context.Context, collection string, filter bson.M, update bson.M) (int64, error)
	UpsertOne(ctx context.Context, collection string, filter bson.M, update bson.M) error
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
}
