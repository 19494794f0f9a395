package dto

import (
	"github.com/shopspring/decimal"

	"bakery-shop/internal/model"
)

type RegisterRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"required"`
	BirthDate       string `json:"birthDate"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Street          string `json:"street" validate:"required"`
	HouseNumber     string `json:"houseNumber" validate:"required"`
	Apartment       string `json:"apartment"`
	PostalCode      string `json:"postalCode" validate:"required"`
	City            string `json:"city" validate:"required"`
	State           string `json:"state" validate:"required"`
	Newsletter      bool   `json:"newsletter"`
}

type LoginRequest struct {
	// Contact is the phone number or email the account was registered with.
	Contact  string `json:"contact" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OrderUserRef lets a stateless client identify itself by contact method
// when no session token survived (see OrderService.Create).
type OrderUserRef struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type CreateOrderRequest struct {
	Items               []model.OrderItem `json:"items"`
	Quantity            int               `json:"quantity"`
	TotalAmount         decimal.Decimal   `json:"totalAmount"`
	UserID              int64             `json:"userId"`
	UserData            *OrderUserRef     `json:"userData"`
	DeliveryDate        string            `json:"deliveryDate"`
	DeliveryTime        string            `json:"deliveryTime"`
	SpecialInstructions string            `json:"specialInstructions"`
	PaymentMethod       string            `json:"paymentMethod"`
}

type MarkDeliveredRequest struct {
	OrderID int64 `json:"orderId" validate:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

type StatusResponse struct {
	Authenticated bool  `json:"authenticated"`
	UserID        int64 `json:"userId,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID int64  `json:"orderId"`
}

// OrderView is an order projection with the cart lines parsed back out of
// their stored form.
type OrderView struct {
	model.Order
	Items []model.OrderItem `json:"items"`
}

type OrdersResponse struct {
	Success bool        `json:"success"`
	Orders  []OrderView `json:"orders"`
}

type DatabaseDumpResponse struct {
	Success     bool          `json:"success"`
	Users       []model.User  `json:"users"`
	Orders      []model.Order `json:"orders"`
	TotalUsers  int           `json:"totalUsers"`
	TotalOrders int           `json:"totalOrders"`
}
