package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a message delivered to an account's in-app inbox.
type Notification struct {
	ID        uuid.UUID // The unique identifier for this notification.
	AccountID uuid.UUID // Links this notification to the Account it belongs to.
	Title     string    // Short headline shown in the inbox list.
	Message   string    // The notification body.
	IsRead    bool      // Whether the owner has marked this notification as read.
	CreatedAt time.Time // Timestamp of when this notification was created.
}
