package postgres

import (
	"context"

	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultNotificationLimit = 50

// notificationRepository implements the domain.NotificationRepository interface using GORM.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// ListByAccountID returns the account's notifications, newest first.
func (repo *notificationRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	var models []*model.NotificationModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(models))
	for _, m := range models {
		notifications = append(notifications, toNotificationDomain(m))
	}

	return notifications, nil
}

// MarkRead flags a notification as read. The account scoping in the WHERE
// clause keeps an account from touching another account's rows.
func (repo *notificationRepository) MarkRead(ctx context.Context, accountID, notificationID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, accountID).
		Update("is_read", true)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// toNotificationDomain converts a GORM NotificationModel to a domain Notification entity.
func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:        data.ID,
		AccountID: data.AccountID,
		Title:     data.Title,
		Message:   data.Message,
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}
