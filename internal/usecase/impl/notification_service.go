package impl

import (
	"context"
	"log/slog"

	deliverycontext "upkiip/internal/delivery/context"
	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for notificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the account's notifications, newest first.
func (srv *notificationService) List(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.ListByAccountID(ctx, accountID, limit)
	if err != nil {
		srv.log(ctx).Error("Failed to list notifications", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead flags one of the account's notifications as read.
func (srv *notificationService) MarkRead(ctx context.Context, accountID, notificationID uuid.UUID) error {
	if err := srv.notificationRepo.MarkRead(ctx, accountID, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("notification missing or not owned by caller")
		}

		srv.log(ctx).Error("Failed to mark notification read", slog.Any("accountID", accountID), slog.Any("notificationID", notificationID), slog.Any("error", err))

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}
