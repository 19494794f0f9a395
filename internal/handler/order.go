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

type OrderHandler struct {
	orderService service.OrderService
	log          *zap.Logger
}

func NewOrderHandler(orderService service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	// Zero when the request carried no usable token; the service then
	// falls back to the contact method or user id from the payload.
	tokenUserID, _ := middleware.UserIDFromContext(c)

	orderID, err := h.orderService.Create(ctx, req, tokenUserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}

	h.log.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("token_user_id", tokenUserID),
	)

	return c.JSON(http.StatusOK, dto.CreateOrderResponse{
		Success: true,
		Message: "Order created successfully",
		OrderID: orderID,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	orders, err := h.orderService.ListForUser(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OrdersResponse{
		Success: true,
		Orders:  orderViews(orders),
	})
}

func orderViews(orders []model.Order) []dto.OrderView {
	views := make([]dto.OrderView, 0, len(orders))
	for _, order := range orders {
		items, err := order.Items()
		if err != nil {
			// A corrupt blob only costs the item breakdown, not the order.
			items = nil
		}
		views = append(views, dto.OrderView{Order: order, Items: items})
	}
	return views
}
