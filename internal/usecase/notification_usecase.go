package usecase

import (
	"context"

	"upkiip/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for notification inbox operations.
type NotificationUsecase interface {
	// List returns the account's notifications, newest first.
	List(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.Notification, error)

	// MarkRead flags one of the account's notifications as read.
	MarkRead(ctx context.Context, accountID, notificationID uuid.UUID) error
}
