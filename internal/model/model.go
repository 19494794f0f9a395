package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Role distinguishes regular customers from staff who manage deliveries.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:64;not null" json:"firstName"`
	LastName     string    `gorm:"size:64;not null" json:"lastName"`
	Email        string    `gorm:"size:128;index" json:"email,omitempty"`
	Phone        string    `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	BirthDate    string    `gorm:"size:16" json:"birthDate,omitempty"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	Street       string    `gorm:"size:128" json:"street"`
	HouseNumber  string    `gorm:"size:16" json:"houseNumber"`
	Apartment    string    `gorm:"size:16" json:"apartment,omitempty"`
	PostalCode   string    `gorm:"size:16" json:"postalCode"`
	City         string    `gorm:"size:64" json:"city"`
	State        string    `gorm:"size:64" json:"state"`
	Country      string    `gorm:"size:64;not null" json:"country"`
	Newsletter   bool      `json:"newsletter"`
	Role         Role      `gorm:"size:16;index;not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrderItem is one cart line as the client submitted it.
type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order carries a denormalized copy of the buyer's address taken at
// creation time, so later profile changes never rewrite past orders.
type Order struct {
	ID                  int64           `gorm:"primaryKey" json:"id"`
	UserID              int64           `gorm:"index;not null" json:"userId"`
	ProductName         string          `gorm:"size:128" json:"productName"`
	ItemsJSON           string          `gorm:"type:text" json:"-"`
	Quantity            int             `json:"quantity"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric" json:"totalAmount"`
	FirstName           string          `gorm:"size:64" json:"firstName"`
	LastName            string          `gorm:"size:64" json:"lastName"`
	Phone               string          `gorm:"size:32" json:"phone"`
	Street              string          `gorm:"size:128" json:"street"`
	HouseNumber         string          `gorm:"size:16" json:"houseNumber"`
	Apartment           string          `gorm:"size:16" json:"apartment,omitempty"`
	PostalCode          string          `gorm:"size:16" json:"postalCode"`
	City                string          `gorm:"size:64" json:"city"`
	State               string          `gorm:"size:64" json:"state"`
	DeliveryDate        string          `gorm:"size:16" json:"deliveryDate,omitempty"`
	DeliveryTime        string          `gorm:"size:16" json:"deliveryTime,omitempty"`
	SpecialInstructions string          `gorm:"type:text" json:"specialInstructions,omitempty"`
	PaymentMethod       string          `gorm:"size:32" json:"paymentMethod,omitempty"`
	Status              OrderStatus     `gorm:"size:16;index;not null" json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
	DeliveredAt         *time.Time      `json:"deliveredAt,omitempty"`
}

// SetItems serializes the cart lines onto the order record.
func (o *Order) SetItems(items []OrderItem) error {
	if len(items) == 0 {
		o.ItemsJSON = "[]"
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.ItemsJSON = string(raw)
	return nil
}

// Items deserializes the stored cart lines. A record written before items
// were tracked yields an empty slice.
func (o *Order) Items() ([]OrderItem, error) {
	if o.ItemsJSON == "" {
		return nil, nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil, err
	}
	return items, nil
}
