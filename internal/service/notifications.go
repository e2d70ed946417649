package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shop-admin/internal/metrics"
	"shop-admin/internal/repository"
)

// Display times are preformatted in the shop's regional timezone at write
// time so consumers never convert at read time.
const (
	displayTimezone   = "Asia/Kolkata"
	displayTimeLayout = "2006-01-02 15:04:05"
)

var istLocation = func() *time.Location {
	loc, err := time.LoadLocation(displayTimezone)
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}()

func displayTimeString(t time.Time) string {
	return t.In(istLocation).Format(displayTimeLayout)
}

type NotificationService struct {
	notifications NotificationRepository
	users         UserRepository
	logger        *zap.Logger
}

func NewNotificationService(notifications NotificationRepository, users UserRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		logger:        logger,
	}
}

// List returns admin-created notifications, newest first. Each row carries
// the stored display string; legacy documents without one fall back to an
// on-the-fly conversion.
func (s *NotificationService) List(ctx context.Context, req ListNotificationsRequest) (*NotificationPage, error) {
	skip := req.Skip
	if skip < 0 {
		skip = 0
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	notifications, err := s.notifications.Find(ctx, req.Filter, skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.notifications.Count(ctx, req.Filter)
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		createdAt := n.CreatedAtIST
		if createdAt == "" {
			createdAt = displayTimeString(n.CreatedAt)
		}

		audience := n.For
		if audience == "" {
			audience = repository.AudienceSpecificUser
		}

		createdBy := n.CreatedBy
		if createdBy == "" {
			createdBy = "Unknown"
		}

		view := NotificationView{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			For:       audience,
			CreatedAt: createdAt,
			CreatedBy: createdBy,
			OrderID:   n.OrderID,
		}

		if audience == repository.AudienceSpecificUser {
			s.resolveRecipient(ctx, &view, n.UserID)
		} else {
			view.UserName = "All Users"
			view.UserEmail = "Broadcast"
			count, err := s.users.CountCustomers(ctx, repository.UserFilter{ActiveOnly: true})
			if err != nil {
				return nil, err
			}
			view.RecipientCount = &count
		}

		views = append(views, view)
	}

	return &NotificationPage{
		Notifications: views,
		Total:         total,
		Skip:          skip,
		Limit:         limit,
	}, nil
}

func (s *NotificationService) resolveRecipient(ctx context.Context, view *NotificationView, userID string) {
	if userID == "" {
		view.UserName = "Unknown"
		view.UserEmail = "N/A"
		return
	}

	uid := userID
	view.UserID = &uid

	user, err := s.users.GetByID(ctx, userID)
	switch {
	case err == nil:
		view.UserName = user.Name
		view.UserEmail = user.Email
	case errors.Is(err, repository.ErrObjectNotFound):
		view.UserName = "User Deleted"
		view.UserEmail = "N/A"
	default:
		s.logger.Warn("failed to resolve notification recipient",
			zap.String("user_id", userID), zap.Error(err))
		view.UserName = "Invalid User"
		view.UserEmail = "N/A"
	}
}

// SendToUser stores a single targeted notification after verifying the
// recipient exists.
func (s *NotificationService) SendToUser(ctx context.Context, req SendNotificationRequest, actor string) (string, error) {
	if req.UserID == "" || req.Title == "" || req.Message == "" {
		return "", validationErr("User ID, title, and message are required")
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return "", notFoundErr("User not found")
		}
		return "", err
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = "system"
	}

	now := time.Now().UTC()
	notification := &repository.Notification{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		Title:          req.Title,
		Message:        req.Message,
		Type:           notificationType,
		OrderID:        req.OrderID,
		For:            repository.AudienceSpecificUser,
		Read:           false,
		CreatedAt:      now,
		CreatedAtIST:   displayTimeString(now),
		Timezone:       displayTimezone,
		CreatedBy:      actor,
		CreatedByAdmin: true,
	}

	if err := s.notifications.Insert(ctx, notification); err != nil {
		return "", err
	}

	metrics.NotificationsSentTotal.Inc()
	s.logger.Info("notification sent",
		zap.String("user_id", req.UserID), zap.String("created_by", actor))

	name := user.Name
	if name == "" {
		name = "user"
	}
	return fmt.Sprintf("Notification sent to %s", name), nil
}

// Broadcast stores exactly one document addressed to an audience snapshot;
// per-recipient rows are never materialized. An empty audience is an error
// and nothing is written.
func (s *NotificationService) Broadcast(ctx context.Context, req BroadcastNotificationRequest, actor string) (*BroadcastResult, error) {
	if req.Title == "" || req.Message == "" {
		return nil, validationErr("Title and message are required")
	}

	activeOnly := true
	verifiedOnly := false
	if req.UserFilter != nil {
		if req.UserFilter.ActiveOnly != nil {
			activeOnly = *req.UserFilter.ActiveOnly
		}
		verifiedOnly = req.UserFilter.VerifiedOnly
	}
	audienceFilter := repository.UserFilter{ActiveOnly: activeOnly, VerifiedOnly: verifiedOnly}

	count, err := s.users.CountCustomers(ctx, audienceFilter)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, validationErr("No users found matching the criteria")
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = "system"
	}

	now := time.Now().UTC()
	notification := &repository.Notification{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Message:         req.Message,
		Type:            notificationType,
		For:             repository.AudienceAllUsers,
		UserFilter:      audienceFilter,
		TargetUserCount: count,
		Read:            false,
		CreatedAt:       now,
		CreatedAtIST:    displayTimeString(now),
		Timezone:        displayTimezone,
		CreatedBy:       actor,
		CreatedByAdmin:  true,
	}

	if err := s.notifications.Insert(ctx, notification); err != nil {
		return nil, err
	}

	metrics.NotificationsSentTotal.Inc()
	s.logger.Info("broadcast notification created",
		zap.Int64("target_user_count", count), zap.String("created_by", actor))

	return &BroadcastResult{
		UserCount: count,
		Message:   fmt.Sprintf("Notification will be shown to %d users", count),
	}, nil
}

// Delete removes an admin-created notification. Not-found and
// not-authorized deliberately collapse into one message.
func (s *NotificationService) Delete(ctx context.Context, id, actor string) error {
	if id == "" {
		return validationErr("Notification ID is required")
	}

	if _, err := s.notifications.GetAdminByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return notFoundErr("Notification not found or not authorized")
		}
		return err
	}

	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return notFoundErr("Notification not found or not authorized")
		}
		return err
	}

	s.logger.Info("notification deleted",
		zap.String("notification_id", id), zap.String("deleted_by", actor))
	return nil
}

func (s *NotificationService) Stats(ctx context.Context) (*NotificationStats, error) {
	total, err := s.notifications.CountAdmin(ctx)
	if err != nil {
		return nil, err
	}
	broadcast, err := s.notifications.CountByAudience(ctx, repository.AudienceAllUsers)
	if err != nil {
		return nil, err
	}
	singleUser, err := s.notifications.CountByAudience(ctx, repository.AudienceSpecificUser)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountTargetedByRead(ctx, false)
	if err != nil {
		return nil, err
	}
	read, err := s.notifications.CountTargetedByRead(ctx, true)
	if err != nil {
		return nil, err
	}
	byType, err := s.notifications.TypeCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &NotificationStats{
		Total:      total,
		Broadcast:  broadcast,
		SingleUser: singleUser,
		Unread:     unread,
		Read:       read,
		ByType:     byType,
	}, nil
}
