package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bakery-shop/internal/dto"
	"bakery-shop/internal/model"
	"bakery-shop/internal/repository"
)

// defaultProductName labels legacy single-product orders that arrive
// without an item list.
const defaultProductName = "Traditionelles Barbari-Brot"

type OrderService interface {
	// Create resolves the buyer through a fallback chain (session token,
	// then contact method from the payload, then a client-supplied user id
	// re-validated against the store), snapshots the buyer's address onto
	// the order and persists it. tokenUserID is zero when no valid session
	// token accompanied the request.
	Create(ctx context.Context, req dto.CreateOrderRequest, tokenUserID int64) (int64, error)
	// ListForUser returns the caller's orders, or every order when the
	// caller holds the admin role. Newest first.
	ListForUser(ctx context.Context, userID int64) ([]model.Order, error)
	MarkDelivered(ctx context.Context, orderID int64) error
	DatabaseDump(ctx context.Context) ([]model.User, []model.Order, error)
}

type orderServiceImpl struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

func NewOrderService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) Create(ctx context.Context, req dto.CreateOrderRequest, tokenUserID int64) (int64, error) {
	user, err := s.resolveUser(ctx, req, tokenUserID)
	if err != nil {
		return 0, err
	}

	order := &model.Order{
		UserID:      user.ID,
		ProductName: defaultProductName,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		// Address fields are copied, not referenced: a profile change after
		// checkout must not rewrite orders already placed.
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Phone:               user.Phone,
		Street:              user.Street,
		HouseNumber:         user.HouseNumber,
		Apartment:           user.Apartment,
		PostalCode:          user.PostalCode,
		City:                user.City,
		State:               user.State,
		DeliveryDate:        req.DeliveryDate,
		DeliveryTime:        req.DeliveryTime,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       req.PaymentMethod,
		Status:              model.OrderStatusPending,
	}

	if len(req.Items) > 0 {
		order.ProductName = req.Items[0].Name

		total := decimal.Zero
		quantity := 0
		for _, item := range req.Items {
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			quantity += item.Quantity
		}
		if total.IsPositive() {
			order.TotalAmount = total
		}
		if order.Quantity == 0 {
			order.Quantity = quantity
		}
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}

	if err := order.SetItems(req.Items); err != nil {
		return 0, fmt.Errorf("serialize order items: %w", err)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return 0, err
	}

	return order.ID, nil
}

// resolveUser walks the three-tier fallback chain. Every tier, including a
// client-supplied user id, is validated against the store before use.
func (s *orderServiceImpl) resolveUser(ctx context.Context, req dto.CreateOrderRequest, tokenUserID int64) (*model.User, error) {
	if tokenUserID != 0 {
		user, err := s.userRepo.FindByID(ctx, tokenUserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
	}

	if req.UserData != nil {
		for _, contact := range []string{req.UserData.Phone, req.UserData.Email} {
			if contact == "" {
				continue
			}
			user, err := s.userRepo.FindByContact(ctx, contact)
			if err == nil {
				return user, nil
			}
			if !errors.Is(err, repository.ErrUserNotFound) {
				return nil, err
			}
		}
	}

	if req.UserID != 0 {
		user, err := s.userRepo.FindByID(ctx, req.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleAdmin {
		return s.orderRepo.ListAll(ctx)
	}
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) MarkDelivered(ctx context.Context, orderID int64) error {
	return s.orderRepo.MarkDelivered(ctx, orderID, time.Now())
}

func (s *orderServiceImpl) DatabaseDump(ctx context.Context) ([]model.User, []model.Order, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	return users, orders, nil
}
