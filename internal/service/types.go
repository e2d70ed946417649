package service

import (
	"time"

	"shop-admin/internal/repository"
)

const defaultPageSize = 10

// maxDownloadOrders caps the export variant so one request cannot pull the
// whole collection.
const maxDownloadOrders = 10000

type ListOrdersRequest struct {
	Filter repository.OrderFilter
	Page   int64
	Limit  int64
}

type DownloadOrdersRequest struct {
	Filter repository.OrderFilter
	Limit  int64
}

type Pagination struct {
	CurrentPage int64 `json:"current_page"`
	TotalPages  int64 `json:"total_pages"`
	TotalOrders int64 `json:"total_orders"`
	HasPrev     bool  `json:"has_prev"`
	HasNext     bool  `json:"has_next"`
	PageSize    int64 `json:"page_size"`
}

type OrderItemView struct {
	ProductID     string   `json:"product"`
	ProductName   string   `json:"product_name"`
	ProductImages []string `json:"product_image"`
	Quantity      int      `json:"quantity"`
	Price         float64  `json:"price"`
}

// OrderView is the denormalized page row: user, partner and product
// references are replaced by display fields resolved in batch.
type OrderView struct {
	ID                  string                    `json:"id"`
	Total               float64                   `json:"total"`
	Status              string                    `json:"status"`
	StatusMessage       string                    `json:"status_message,omitempty"`
	Items               []OrderItemView           `json:"items"`
	UserName            string                    `json:"user_name"`
	UserEmail           string                    `json:"user_email"`
	UserPhone           string                    `json:"user_phone"`
	DeliveryPartnerName *string                   `json:"delivery_partner_name"`
	DeliveryAddress     *repository.Address       `json:"delivery_address,omitempty"`
	StatusChangeHistory []repository.StatusChange `json:"status_change_history,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

type OrdersPage struct {
	Orders     []OrderView
	Pagination Pagination
}

type OrdersExport struct {
	Orders     []OrderView
	TotalCount int
}

type UpdateOrderStatusRequest struct {
	OrderID string
	Status  string
	Actor   string
}

type AssignPartnerRequest struct {
	OrderID   string
	PartnerID string
	AdminName string
}

type Assignment struct {
	OrderID     string    `json:"order_id"`
	PartnerID   string    `json:"delivery_partner_id"`
	PartnerName string    `json:"delivery_partner_name"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

type PartnerContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ListNotificationsRequest struct {
	Filter repository.NotificationFilter
	Skip   int64
	Limit  int64
}

type NotificationView struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Message        string  `json:"message"`
	Type           string  `json:"type"`
	For            string  `json:"for"`
	CreatedAt      string  `json:"created_at"`
	CreatedBy      string  `json:"created_by"`
	OrderID        string  `json:"order_id,omitempty"`
	UserID         *string `json:"user_id"`
	UserName       string  `json:"user_name"`
	UserEmail      string  `json:"user_email"`
	RecipientCount *int64  `json:"recipient_count,omitempty"`
}

type NotificationPage struct {
	Notifications []NotificationView
	Total         int64
	Skip          int64
	Limit         int64
}

type SendNotificationRequest struct {
	UserID  string
	Title   string
	Message string
	Type    string
	OrderID string
}

// BroadcastUserFilter mirrors the wire payload: an absent active_only key
// defaults to filtering on active customers.
type BroadcastUserFilter struct {
	ActiveOnly   *bool `json:"active_only"`
	VerifiedOnly bool  `json:"verified_only"`
}

type BroadcastNotificationRequest struct {
	Title      string
	Message    string
	Type       string
	UserFilter *BroadcastUserFilter
}

type BroadcastResult struct {
	UserCount int64
	Message   string
}

type NotificationStats struct {
	Total      int64            `json:"total"`
	Broadcast  int64            `json:"broadcast"`
	SingleUser int64            `json:"single_user"`
	Unread     int64            `json:"unread"`
	Read       int64            `json:"read"`
	ByType     map[string]int64 `json:"by_type"`
}

type UpdateShopStatusRequest struct {
	IsOpen     *bool
	ReopenTime string
	Reason     string
}
