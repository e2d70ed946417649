package server

import (
	"time"
)

// AuditLogEntry records one admin mutation for the Kafka audit trail.
type AuditLogEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	Actor          string    `json:"actor"`
	Action         string    `json:"action"`
	OrderID        string    `json:"order_id,omitempty"`
	NotificationID string    `json:"notification_id,omitempty"`
	Detail         string    `json:"detail,omitempty"`
}
