package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shop-admin/internal/metrics"
	"shop-admin/internal/repository"
	"shop-admin/internal/service"
)

type AdminInfo struct {
	Email string
	Name  string
}

// Session wraps one admin WebSocket connection. Writes are serialized with
// a mutex because the hub may broadcast concurrently with the read loop.
type Session struct {
	conn   *websocket.Conn
	admin  AdminInfo
	server *Server
	logger *zap.Logger

	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, admin AdminInfo, server *Server) *Session {
	return &Session{
		conn:   conn,
		admin:  admin,
		server: server,
		logger: server.logger.With(zap.String("admin", admin.Email)),
	}
}

func (s *Session) Admin() string { return s.admin.Email }

func (s *Session) SendJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Session) sendError(message string) {
	if err := s.SendJSON(errorFrame{Type: "error", Message: message}); err != nil {
		s.logger.Info("could not send error message, client disconnected", zap.Error(err))
	}
}

// respondErr maps a service error onto the wire: validation and not-found
// messages go to the caller verbatim, anything else is logged in full and
// replaced by the handler's generic fallback message.
func (s *Session) respondErr(operation, fallback string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()

	var ve *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		s.sendError(ve.Message)
	case errors.As(err, &nf):
		s.sendError(nf.Message)
	default:
		s.logger.Error("operation failed",
			zap.String("operation", operation), zap.Error(err))
		s.sendError(fallback)
	}
}

func (s *Session) audit(ctx context.Context, action, orderID, notificationID, detail string) {
	s.server.audit.LogEntry(ctx, AuditLogEntry{
		Timestamp:      time.Now().UTC(),
		Actor:          s.admin.Email,
		Action:         action,
		OrderID:        orderID,
		NotificationID: notificationID,
		Detail:         detail,
	})
}

func (s *Session) run(ctx context.Context) {
	for {
		var msg inboundMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		s.handleMessage(ctx, msg)
	}
}

func (s *Session) handleMessage(ctx context.Context, msg inboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in message handler",
				zap.String("type", msg.Type), zap.Any("panic", r))
			s.sendError("Internal server error")
		}
	}()

	switch msg.Type {
	case "ping":
		if err := s.SendJSON(pongFrame{Type: "pong"}); err != nil {
			s.logger.Info("pong send failed", zap.Error(err))
		}

	case "get_orders":
		s.handleGetOrders(ctx, msg.Filters)
	case "download_orders":
		s.handleDownloadOrders(ctx, msg.Filters)
	case "update_order_status":
		s.handleUpdateOrderStatus(ctx, msg.Data)
	case "assign_delivery_partner":
		s.handleAssignPartner(ctx, msg.Data)
	case "get_delivery_requests_for_order":
		s.handleDeliveryRequests(ctx, msg.Data)

	case "get_notifications":
		s.handleGetNotifications(ctx, msg.Filters)
	case "send_notification":
		s.handleSendNotification(ctx, msg.Data)
	case "broadcast_notification":
		s.handleBroadcastNotification(ctx, msg.Data)
	case "delete_notification":
		s.handleDeleteNotification(ctx, msg.Data)
	case "get_notification_stats":
		s.handleNotificationStats(ctx)

	case "get_shop_status":
		s.handleGetShopStatus(ctx)
	case "update_shop_status":
		s.handleUpdateShopStatus(ctx, msg.Data)

	default:
		s.logger.Warn("unknown message type", zap.String("type", msg.Type))
		s.sendError("Unknown message type: " + msg.Type)
	}
}

func decodePayload(raw json.RawMessage, dest interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func orderFilterFromPayload(p orderFiltersPayload) repository.OrderFilter {
	return repository.OrderFilter{
		Status:    p.Status,
		FromDate:  p.FromDate,
		ToDate:    p.ToDate,
		MinAmount: string(p.MinAmount),
		MaxAmount: string(p.MaxAmount),
		Search:    p.Search,
	}
}

func (s *Session) handleGetOrders(ctx context.Context, raw json.RawMessage) {
	var payload orderFiltersPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid filters payload")
		return
	}

	page, err := s.server.orders.List(ctx, service.ListOrdersRequest{
		Filter: orderFilterFromPayload(payload),
		Page:   payload.Page,
		Limit:  payload.Limit,
	})
	if err != nil {
		s.respondErr("get_orders", "Failed to fetch orders", err)
		return
	}

	if err := s.SendJSON(ordersDataFrame{
		Type:       "orders_data",
		Channel:    "orders",
		Orders:     page.Orders,
		Pagination: page.Pagination,
	}); err != nil {
		s.logger.Info("orders send failed, client disconnected", zap.Error(err))
	}
}

func (s *Session) handleDownloadOrders(ctx context.Context, raw json.RawMessage) {
	var payload orderFiltersPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid filters payload")
		return
	}

	export, err := s.server.orders.Download(ctx, service.DownloadOrdersRequest{
		Filter: orderFilterFromPayload(payload),
		Limit:  payload.Limit,
	})
	if err != nil {
		s.respondErr("download_orders", "Failed to fetch orders for download", err)
		return
	}

	if err := s.SendJSON(ordersDownloadFrame{
		Type:       "orders_download_data",
		Orders:     export.Orders,
		TotalCount: export.TotalCount,
	}); err != nil {
		s.logger.Info("orders download send failed, client disconnected", zap.Error(err))
	}
}

func (s *Session) handleUpdateOrderStatus(ctx context.Context, raw json.RawMessage) {
	var payload orderStatusPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	orderID := payload.orderID()
	err := s.server.orders.UpdateStatus(ctx, service.UpdateOrderStatusRequest{
		OrderID: orderID,
		Status:  payload.Status,
		Actor:   s.admin.Email,
	})
	if err != nil {
		s.respondErr("update_order_status", "Failed to update order status", err)
		return
	}

	s.audit(ctx, "update_order_status", orderID, "", "status="+payload.Status)

	if err := s.SendJSON(orderUpdatedFrame{
		Type:    "order_updated",
		Success: true,
		OrderID: orderID,
	}); err != nil {
		s.logger.Info("order update response send failed", zap.Error(err))
	}
}

func (s *Session) handleAssignPartner(ctx context.Context, raw json.RawMessage) {
	var payload assignPartnerPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	adminName := payload.AdminName
	if adminName == "" {
		adminName = s.admin.Name
	}

	assignment, err := s.server.orders.AssignPartner(ctx, service.AssignPartnerRequest{
		OrderID:   payload.OrderID,
		PartnerID: payload.PartnerID,
		AdminName: adminName,
	})
	if err != nil {
		s.respondErr("assign_delivery_partner", "Failed to assign delivery partner", err)
		return
	}

	s.audit(ctx, "assign_delivery_partner", payload.OrderID, "", "partner="+payload.PartnerID)

	if err := s.SendJSON(orderAssignedFrame{
		Type:    "order_assigned",
		Success: true,
		Data:    assignment,
	}); err != nil {
		s.logger.Info("assignment response send failed", zap.Error(err))
	}
}

func (s *Session) handleDeliveryRequests(ctx context.Context, raw json.RawMessage) {
	var payload deliveryRequestsPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	contacts, err := s.server.orders.DeliveryRequests(ctx, payload.OrderID)
	if err != nil {
		s.respondErr("get_delivery_requests_for_order", "Failed to get delivery requests", err)
		return
	}

	if err := s.SendJSON(deliveryRequestsFrame{
		Type:             "delivery_requests_data",
		DeliveryRequests: contacts,
	}); err != nil {
		s.logger.Info("delivery requests send failed", zap.Error(err))
	}
}

func (s *Session) handleGetNotifications(ctx context.Context, raw json.RawMessage) {
	var payload notificationFiltersPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid filters payload")
		return
	}

	page, err := s.server.notifications.List(ctx, service.ListNotificationsRequest{
		Filter: repository.NotificationFilter{
			Type:      payload.Type,
			For:       payload.For,
			StartDate: payload.StartDate,
			EndDate:   payload.EndDate,
		},
		Skip:  payload.Skip,
		Limit: payload.Limit,
	})
	if err != nil {
		s.respondErr("get_notifications", "Failed to fetch notifications", err)
		return
	}

	if err := s.SendJSON(notificationsDataFrame{
		Type:          "notifications_data",
		Notifications: page.Notifications,
		Total:         page.Total,
		Skip:          page.Skip,
		Limit:         page.Limit,
	}); err != nil {
		s.logger.Info("notifications send failed", zap.Error(err))
	}
}

func (s *Session) handleSendNotification(ctx context.Context, raw json.RawMessage) {
	var payload sendNotificationPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	message, err := s.server.notifications.SendToUser(ctx, service.SendNotificationRequest{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
		OrderID: payload.OrderID,
	}, s.admin.Email)
	if err != nil {
		s.respondErr("send_notification", "Failed to send notification", err)
		return
	}

	s.audit(ctx, "send_notification", payload.OrderID, "", "user="+payload.UserID)

	if err := s.SendJSON(notificationSentFrame{
		Type:    "notification_sent",
		Message: message,
	}); err != nil {
		s.logger.Info("notification response send failed", zap.Error(err))
	}
}

func (s *Session) handleBroadcastNotification(ctx context.Context, raw json.RawMessage) {
	var payload broadcastNotificationPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	result, err := s.server.notifications.Broadcast(ctx, service.BroadcastNotificationRequest{
		Title:      payload.Title,
		Message:    payload.Message,
		Type:       payload.Type,
		UserFilter: payload.UserFilter,
	}, s.admin.Email)
	if err != nil {
		s.respondErr("broadcast_notification", "Failed to send broadcast notification", err)
		return
	}

	s.audit(ctx, "broadcast_notification", "", "", result.Message)

	if err := s.SendJSON(broadcastSentFrame{
		Type:      "notification_broadcast_sent",
		Message:   result.Message,
		UserCount: result.UserCount,
	}); err != nil {
		s.logger.Info("broadcast response send failed", zap.Error(err))
	}
}

func (s *Session) handleDeleteNotification(ctx context.Context, raw json.RawMessage) {
	var payload deleteNotificationPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	if err := s.server.notifications.Delete(ctx, payload.NotificationID, s.admin.Email); err != nil {
		s.respondErr("delete_notification", "Failed to delete notification", err)
		return
	}

	s.audit(ctx, "delete_notification", "", payload.NotificationID, "")

	if err := s.SendJSON(notificationDeletedFrame{
		Type:           "notification_deleted",
		Message:        "Notification deleted successfully",
		NotificationID: payload.NotificationID,
	}); err != nil {
		s.logger.Info("delete response send failed", zap.Error(err))
	}
}

func (s *Session) handleNotificationStats(ctx context.Context) {
	stats, err := s.server.notifications.Stats(ctx)
	if err != nil {
		s.respondErr("get_notification_stats", "Failed to fetch notification stats", err)
		return
	}

	if err := s.SendJSON(notificationStatsFrame{
		Type:  "notification_stats",
		Stats: stats,
	}); err != nil {
		s.logger.Info("stats send failed", zap.Error(err))
	}
}

func (s *Session) handleGetShopStatus(ctx context.Context) {
	status, err := s.server.shopStatus.Get(ctx)
	if err != nil {
		s.respondErr("get_shop_status", "Failed to get shop status", err)
		return
	}

	if err := s.SendJSON(shopStatusFrame{
		Type:       "shop_status",
		IsOpen:     status.IsOpen,
		ReopenTime: status.ReopenTime,
		Reason:     status.Reason,
		UpdatedAt:  status.UpdatedAt,
		UpdatedBy:  status.UpdatedBy,
	}); err != nil {
		s.logger.Info("shop status send failed", zap.Error(err))
	}
}

func (s *Session) handleUpdateShopStatus(ctx context.Context, raw json.RawMessage) {
	var payload shopStatusPayload
	if err := decodePayload(raw, &payload); err != nil {
		s.sendError("Invalid request payload")
		return
	}

	status, err := s.server.shopStatus.Update(ctx, service.UpdateShopStatusRequest{
		IsOpen:     payload.IsOpen,
		ReopenTime: payload.ReopenTime,
		Reason:     payload.Reason,
	}, s.admin.Email)
	if err != nil {
		s.respondErr("update_shop_status", "Failed to update shop status", err)
		return
	}

	stateMsg := "Shop is now closed"
	if status.IsOpen {
		stateMsg = "Shop is now open"
	}

	s.audit(ctx, "update_shop_status", "", "", stateMsg)

	if err := s.SendJSON(shopStatusUpdatedFrame{
		Type:       "shop_status_updated",
		IsOpen:     status.IsOpen,
		ReopenTime: status.ReopenTime,
		Reason:     status.Reason,
		Message:    stateMsg,
		UpdatedAt:  status.UpdatedAt,
		UpdatedBy:  status.UpdatedBy,
	}); err != nil {
		s.logger.Info("shop status update response send failed", zap.Error(err))
	}
}
