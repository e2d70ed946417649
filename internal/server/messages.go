package server

import (
	"bytes"
	"encoding/json"
	"time"

	"shop-admin/internal/service"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Filters json.RawMessage `json:"filters"`
}

// flexString accepts both a JSON string and a bare number, since admin
// clients send amount filters either way.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(bytes.TrimSpace(b))
	return nil
}

type orderFiltersPayload struct {
	Status    string     `json:"status"`
	FromDate  string     `json:"from_date"`
	ToDate    string     `json:"to_date"`
	MinAmount flexString `json:"min_amount"`
	MaxAmount flexString `json:"max_amount"`
	Search    string     `json:"search"`
	Page      int64      `json:"page"`
	Limit     int64      `json:"limit"`
}

type orderStatusPayload struct {
	OrderID    string `json:"order_id"`
	OrderIDAlt string `json:"orderId"`
	Status     string `json:"status"`
}

func (p orderStatusPayload) orderID() string {
	if p.OrderID != "" {
		return p.OrderID
	}
	return p.OrderIDAlt
}

type assignPartnerPayload struct {
	OrderID   string `json:"order_id"`
	PartnerID string `json:"delivery_partner_id"`
	AdminName string `json:"admin_name"`
}

type deliveryRequestsPayload struct {
	OrderID string `json:"order_id"`
}

type notificationFiltersPayload struct {
	Type      string `json:"type"`
	For       string `json:"for"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Skip      int64  `json:"skip"`
	Limit     int64  `json:"limit"`
}

type sendNotificationPayload struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	OrderID string `json:"order_id"`
}

type broadcastNotificationPayload struct {
	Title      string                       `json:"title"`
	Message    string                       `json:"message"`
	Type       string                       `json:"type"`
	UserFilter *service.BroadcastUserFilter `json:"user_filter"`
}

type deleteNotificationPayload struct {
	NotificationID string `json:"notification_id"`
}

type shopStatusPayload struct {
	IsOpen     *bool  `json:"is_open"`
	ReopenTime string `json:"reopen_time"`
	Reason     string `json:"reason"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type pongFrame struct {
	Type string `json:"type"`
}

type ordersDataFrame struct {
	Type       string              `json:"type"`
	Channel    string              `json:"channel"`
	Orders     []service.OrderView `json:"orders"`
	Pagination service.Pagination  `json:"pagination"`
}

type ordersDownloadFrame struct {
	Type       string              `json:"type"`
	Orders     []service.OrderView `json:"orders"`
	TotalCount int                 `json:"total_count"`
}

type orderUpdatedFrame struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
}

type orderAssignedFrame struct {
	Type    string              `json:"type"`
	Success bool                `json:"success"`
	Data    *service.Assignment `json:"data"`
}

type deliveryRequestsFrame struct {
	Type             string                   `json:"type"`
	DeliveryRequests []service.PartnerContact `json:"delivery_requests"`
}

type notificationsDataFrame struct {
	Type          string                     `json:"type"`
	Notifications []service.NotificationView `json:"notifications"`
	Total         int64                      `json:"total"`
	Skip          int64                      `json:"skip"`
	Limit         int64                      `json:"limit"`
}

type notificationSentFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type broadcastSentFrame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	UserCount int64  `json:"user_count"`
}

type notificationDeletedFrame struct {
	Type           string `json:"type"`
	Message        string `json:"message"`
	NotificationID string `json:"notification_id"`
}

type notificationStatsFrame struct {
	Type  string                     `json:"type"`
	Stats *service.NotificationStats `json:"stats"`
}

type shopStatusFrame struct {
	Type       string     `json:"type"`
	IsOpen     bool       `json:"is_open"`
	ReopenTime *time.Time `json:"reopen_time"`
	Reason     string     `json:"reason,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
	UpdatedBy  string     `json:"updated_by"`
}

type shopStatusUpdatedFrame struct {
	Type       string     `json:"type"`
	IsOpen     bool       `json:"is_open"`
	ReopenTime *time.Time `json:"reopen_time"`
	Reason     string     `json:"reason,omitempty"`
	Message    string     `json:"message"`
	UpdatedAt  time.Time  `json:"updated_at"`
	UpdatedBy  string     `json:"updated_by"`
}
