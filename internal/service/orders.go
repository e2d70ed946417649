package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shop-admin/internal/metrics"
	"shop-admin/internal/repository"
)

type OrderService struct {
	orders   OrderRepository
	users    UserRepository
	products ProductRepository
	logger   *zap.Logger
}

func NewOrderService(orders OrderRepository, users UserRepository, products ProductRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		users:    users,
		products: products,
		logger:   logger,
	}
}

// List returns one page of filtered orders, most recent first, with the
// referenced users, partners and products resolved into display fields.
func (s *OrderService) List(ctx context.Context, req ListOrdersRequest) (*OrdersPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	skip := (page - 1) * limit

	total, err := s.orders.Count(ctx, req.Filter)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.Find(ctx, req.Filter, skip, limit)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, orders, false)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &OrdersPage{
		Orders: views,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalOrders: total,
			HasPrev:     page > 1,
			HasNext:     page < totalPages,
			PageSize:    limit,
		},
	}, nil
}

// Download runs the same filter logic without pagination, capped at
// maxDownloadOrders, and keeps the delivery address on each row.
func (s *OrderService) Download(ctx context.Context, req DownloadOrdersRequest) (*OrdersExport, error) {
	limit := req.Limit
	if limit <= 0 || limit > maxDownloadOrders {
		limit = maxDownloadOrders
	}

	orders, err := s.orders.Find(ctx, req.Filter, 0, limit)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, orders, true)
	if err != nil {
		return nil, err
	}

	return &OrdersExport{Orders: views, TotalCount: len(views)}, nil
}

// buildViews resolves every referenced entity for the batch up front: one
// lookup per entity kind, keyed by external ID. Missing references fall back
// to sentinel display values instead of failing the page, and a single order
// that cannot be rendered is skipped with a log entry.
func (s *OrderService) buildViews(ctx context.Context, orders []repository.Order, includeAddress bool) ([]OrderView, error) {
	userIDs := make([]string, 0, len(orders))
	partnerIDs := make([]string, 0, len(orders))
	seenUsers := make(map[string]bool)
	seenPartners := make(map[string]bool)
	var productIDs []string
	seenProducts := make(map[string]bool)

	for _, order := range orders {
		if order.UserID != "" && !seenUsers[order.UserID] {
			seenUsers[order.UserID] = true
			userIDs = append(userIDs, order.UserID)
		}
		if order.DeliveryPartnerID != "" && !seenPartners[order.DeliveryPartnerID] {
			seenPartners[order.DeliveryPartnerID] = true
			partnerIDs = append(partnerIDs, order.DeliveryPartnerID)
		}
		for _, item := range order.Items {
			if item.ProductID != "" && !seenProducts[item.ProductID] {
				seenProducts[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	partners, err := s.users.GetByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		if order.ID == "" {
			s.logger.Error("skipping order without external id",
				zap.String("user", order.UserID),
				zap.Time("created_at", order.CreatedAt))
			continue
		}

		view := OrderView{
			ID:                  order.ID,
			Total:               order.TotalAmount,
			Status:              orderStatusOrDefault(order.Status),
			StatusMessage:       order.StatusMessage,
			StatusChangeHistory: order.StatusChangeHistory,
			CreatedAt:           order.CreatedAt,
			UpdatedAt:           order.UpdatedAt,
			UserName:            "Unknown",
			UserEmail:           "",
			UserPhone:           "",
		}

		if user, ok := users[order.UserID]; ok {
			view.UserName = user.Name
			view.UserEmail = user.Email
			view.UserPhone = user.Phone
		}

		if order.DeliveryPartnerID != "" {
			if partner, ok := partners[order.DeliveryPartnerID]; ok {
				name := partner.Name
				view.DeliveryPartnerName = &name
			}
		}

		view.Items = make([]OrderItemView, 0, len(order.Items))
		for _, item := range order.Items {
			itemView := OrderItemView{
				ProductID:     item.ProductID,
				ProductName:   "Unknown Product",
				ProductImages: []string{},
				Quantity:      item.Quantity,
				Price:         item.Price,
			}
			if product, ok := products[item.ProductID]; ok {
				itemView.ProductName = product.Name
				if product.Images != nil {
					itemView.ProductImages = product.Images
				}
			}
			view.Items = append(view.Items, itemView)
		}

		if includeAddress {
			view.DeliveryAddress = order.DeliveryAddress
		}

		views = append(views, view)
	}

	return views, nil
}

func orderStatusOrDefault(status string) string {
	if status == "" {
		return "pending"
	}
	return status
}

// UpdateStatus sets the status fields and appends a history entry in one
// conditional write keyed by the external order ID.
func (s *OrderService) UpdateStatus(ctx context.Context, req UpdateOrderStatusRequest) error {
	if req.OrderID == "" || req.Status == "" {
		return validationErr("Order ID and status are required")
	}

	now := time.Now().UTC()
	message := fmt.Sprintf("Order status changed to %s", req.Status)
	entry := repository.StatusChange{
		Status:    req.Status,
		ChangedAt: now,
		ChangedBy: req.Actor,
		Message:   message,
	}

	if err := s.orders.UpdateStatus(ctx, req.OrderID, req.Status, message, entry); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return notFoundErr("Order not found")
		}
		return err
	}

	metrics.OrderStatusUpdatesTotal.Inc()
	return nil
}

// AssignPartner verifies both sides of the assignment before writing: the
// order must exist, and the partner must be an active delivery partner. Any
// failed precondition is a discrete error with no partial write.
func (s *OrderService) AssignPartner(ctx context.Context, req AssignPartnerRequest) (*Assignment, error) {
	if req.OrderID == "" || req.PartnerID == "" {
		return nil, validationErr("Order ID and delivery partner ID are required")
	}

	adminName := req.AdminName
	if adminName == "" {
		adminName = "Admin"
	}

	if _, err := s.orders.GetByID(ctx, req.OrderID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, notFoundErr("Order not found")
		}
		return nil, err
	}

	partner, err := s.users.GetActivePartner(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, notFoundErr("Delivery partner not found or inactive")
		}
		return nil, err
	}

	now := time.Now().UTC()
	message := fmt.Sprintf("Order assigned to %s", partner.Name)
	entry := repository.StatusChange{
		Status:      "assigned",
		ChangedAt:   now,
		ChangedBy:   adminName,
		PartnerID:   req.PartnerID,
		PartnerName: partner.Name,
		Message:     fmt.Sprintf("Order assigned to %s by %s", partner.Name, adminName),
	}

	if err := s.orders.AssignPartner(ctx, req.OrderID, req.PartnerID, message, entry); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, notFoundErr("Order not found")
		}
		return nil, err
	}

	s.logger.Info("assigned delivery partner",
		zap.String("order_id", req.OrderID),
		zap.String("partner_id", req.PartnerID))
	metrics.OrdersAssignedTotal.Inc()

	return &Assignment{
		OrderID:     req.OrderID,
		PartnerID:   req.PartnerID,
		PartnerName: partner.Name,
		Status:      "assigned",
		Timestamp:   now,
	}, nil
}

// DeliveryRequests resolves the partners who asked to deliver the order.
func (s *OrderService) DeliveryRequests(ctx context.Context, orderID string) ([]PartnerContact, error) {
	if orderID == "" {
		return nil, validationErr("Order ID is required")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, notFoundErr("Order not found")
		}
		return nil, err
	}

	contacts := make([]PartnerContact, 0, len(order.AcceptedPartners))
	if len(order.AcceptedPartners) == 0 {
		return contacts, nil
	}

	partners, err := s.users.GetByIDs(ctx, order.AcceptedPartners)
	if err != nil {
		return nil, err
	}

	for _, id := range order.AcceptedPartners {
		partner, ok := partners[id]
		if !ok {
			continue
		}
		contacts = append(contacts, PartnerContact{
			ID:    partner.ID,
			Name:  partner.Name,
			Email: partner.Email,
			Phone: partner.Phone,
		})
	}

	return contacts, nil
}
