package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_notifications_sent_total",
		Help: "Total number of notifications successfully created.",
	})

	OrdersAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_orders_assigned_total",
		Help: "Total number of orders assigned to a delivery partner.",
	})

	OrderStatusUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_order_status_updates_total",
		Help: "Total number of successful order status updates.",
	})

	ShopStatusUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_shop_status_updates_total",
		Help: "Total number of shop status updates.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	ConnectedSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "admin_connected_sessions",
		Help: "Current number of connected admin WebSocket sessions.",
	})
)
