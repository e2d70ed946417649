//go:generate mockgen -source ./deps.go -destination=./mocks/deps.go -package=mock_service
package service

import (
	"context"

	"shop-admin/internal/repository"
)

type OrderRepository interface {
	Find(ctx context.Context, filter repository.OrderFilter, skip, limit int64) ([]repository.Order, error)
	Count(ctx context.Context, filter repository.OrderFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	UpdateStatus(ctx context.Context, id, status, message string, entry repository.StatusChange) error
	AssignPartner(ctx context.Context, id, partnerID, message string, entry repository.StatusChange) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]repository.User, error)
	GetActivePartner(ctx context.Context, id string) (*repository.User, error)
	CountCustomers(ctx context.Context, filter repository.UserFilter) (int64, error)
}

type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]repository.Product, error)
}

type NotificationRepository interface {
	Find(ctx context.Context, filter repository.NotificationFilter, skip, limit int64) ([]repository.Notification, error)
	Count(ctx context.Context, filter repository.NotificationFilter) (int64, error)
	Insert(ctx context.Context, n *repository.Notification) error
	GetAdminByID(ctx context.Context, id string) (*repository.Notification, error)
	Delete(ctx context.Context, id string) error
	CountAdmin(ctx context.Context) (int64, error)
	CountByAudience(ctx context.Context, audience string) (int64, error)
	CountTargetedByRead(ctx context.Context, read bool) (int64, error)
	TypeCounts(ctx context.Context) (map[string]int64, error)
}

type ShopStatusRepository interface {
	Get(ctx context.Context) (*repository.ShopStatus, error)
	Insert(ctx context.Context, status *repository.ShopStatus) error
	Upsert(ctx context.Context, status *repository.ShopStatus) error
}

// Cache is the keyed-invalidation surface of the external cache service.
type Cache interface {
	Delete(ctx context.Context, key string) error
}

// Broadcaster pushes a payload to every connected admin session. Owned by
// the transport layer and injected here for side-effect fan-out.
type Broadcaster interface {
	Broadcast(v interface{})
}
