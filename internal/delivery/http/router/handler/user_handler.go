package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "upkiip/internal/delivery/context"
	"upkiip/internal/delivery/http/response"
	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const notificationPageSize = 50

// UserHandler holds dependencies for the authenticated user endpoints.
type UserHandler struct {
	accounts      usecase.AccountUsecase
	notifications usecase.NotificationUsecase
	logger        *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(accounts usecase.AccountUsecase, notifications usecase.NotificationUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, notifications: notifications, logger: logger}
}

type updateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

// profileView is the role-joined account shape returned by the profile
// endpoints. Exactly one profile field is populated, matching the role.
type profileView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	Customer *customerProfileView `json:"customer,omitempty"`
	Provider *providerProfileView `json:"provider,omitempty"`
	Admin    *adminProfileView    `json:"admin,omitempty"`
	Insurer  *insurerProfileView  `json:"insurer,omitempty"`
	Wallet   *walletView          `json:"wallet,omitempty"`
}

type customerProfileView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

type providerProfileView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type adminProfileView struct {
	Name string `json:"name"`
}

type insurerProfileView struct {
	CompanyName string `json:"companyName"`
}

type walletView struct {
	Balance float64 `json:"balance"`
}

type notificationView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfileView(account *entity.Account) profileView {
	view := profileView{
		ID:        account.ID.String(),
		Email:     account.Email,
		Role:      account.Role.String(),
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
	}

	if account.Customer != nil {
		view.Customer = &customerProfileView{
			FirstName: account.Customer.FirstName,
			LastName:  account.Customer.LastName,
			Phone:     account.Customer.Phone,
			Address:   account.Customer.Address,
			City:      account.Customer.City,
			State:     account.Customer.State,
			ZipCode:   account.Customer.ZipCode,
		}
	}
	if account.Provider != nil {
		view.Provider = &providerProfileView{
			FirstName: account.Provider.FirstName,
			LastName:  account.Provider.LastName,
			Phone:     account.Provider.Phone,
			Address:   account.Provider.Address,
		}
	}
	if account.Admin != nil {
		view.Admin = &adminProfileView{Name: account.Admin.Name}
	}
	if account.Insurer != nil {
		view.Insurer = &insurerProfileView{CompanyName: account.Insurer.CompanyName}
	}
	if account.Wallet != nil {
		view.Wallet = &walletView{Balance: account.Wallet.Balance}
	}

	return view
}

func toNotificationViews(notifications []*entity.Notification) []notificationView {
	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return views
}

// GetProfile returns the caller's role-joined profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrNoToken
	}

	account, err := h.accounts.GetProfile(c.Request().Context(), identity.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileView(account), "")
}

// UpdateProfile modifies the caller's own profile row.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrNoToken
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		AccountID:   identity.AccountID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Name:        req.Name,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileView(account), "Profile updated successfully")
}

// ListNotifications returns the caller's latest notifications.
func (h *UserHandler) ListNotifications(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrNoToken
	}

	notifications, err := h.notifications.List(c.Request().Context(), identity.AccountID, notificationPageSize)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toNotificationViews(notifications), "")
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *UserHandler) MarkNotificationRead(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrNoToken
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("notification id must be a UUID")
	}

	if err := h.notifications.MarkRead(c.Request().Context(), identity.AccountID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}
