package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bakery-shop/internal/dto"
	"bakery-shop/internal/middleware"
	"bakery-shop/internal/model"
	"bakery-shop/internal/repository"
	"bakery-shop/internal/service"
)

type AdminHandler struct {
	authService  service.AuthService
	orderService service.OrderService
	log          *zap.Logger
}

func NewAdminHandler(authService service.AuthService, orderService service.OrderService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		orderService: orderService,
		log:          log,
	}
}

// Database dumps every user and order for the admin panel.
func (h *AdminHandler) Database(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.requireAdmin(c); err != nil {
		return err
	}

	users, orders, err := h.orderService.DatabaseDump(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.DatabaseDumpResponse{
		Success:     true,
		Users:       users,
		Orders:      orders,
		TotalUsers:  len(users),
		TotalOrders: len(orders),
	})
}

func (h *AdminHandler) MarkDelivered(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req dto.MarkDeliveredRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.orderService.MarkDelivered(ctx, req.OrderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return err
	}

	h.log.Info("order marked delivered", zap.Int64("order_id", req.OrderID))

	return c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Order marked as delivered successfully",
	})
}

func (h *AdminHandler) requireAdmin(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if err != nil {
		return err
	}

	if user.Role != model.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin privileges required.")
	}
	return nil
}
