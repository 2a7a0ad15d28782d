package usecase

import (
	"context"
	"errors"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/response"
	"wheelshare/pkg/apperr"
	"wheelshare/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// notificationFeedLimit caps the feed at the newest entries.
const notificationFeedLimit = 50

type NotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ entity.NotificationType) error
	GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]response.NotificationResponse, error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ entity.NotificationType) error {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "create notification", err)
	}

	return nil
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]response.NotificationResponse, error) {
	notifications, err := s.repo.Notification.FindByUserID(ctx, userID, notificationFeedLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load notifications", err)
	}

	return response.NotificationsToResponse(notifications), nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	// Scoped by user ID so one user cannot mark another's notification.
	if err := s.repo.Notification.MarkAsRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("notification not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "mark notification read", err)
	}

	return nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "count unread notifications", err)
	}

	return count, nil
}
