package repository

import (
	"context"
	"errors"

	"upkiip/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification does not exist or
// does not belong to the requesting account.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the operations for notification persistence.
type NotificationRepository interface {
	// ListByAccountID returns the account's notifications, newest first,
	// capped at limit.
	ListByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.Notification, error)

	// MarkRead flags a notification as read. The account scoping guarantees
	// an account can only touch its own rows.
	MarkRead(ctx context.Context, accountID, notificationID uuid.UUID) error
}
