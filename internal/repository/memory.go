package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"bakery-shop/internal/model"
)

// MemoryStore keeps users and orders in process memory. Everything is lost
// on restart; it exists for tests and for running the shop without a
// database file. Identifier assignment and insert happen under one lock so
// concurrent registrations never share an id.
type MemoryStore struct {
	mu          sync.Mutex
	users       []model.User
	orders      []model.Order
	nextUserID  int64
	nextOrderID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextUserID:  1,
		nextOrderID: 1,
	}
}

func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepo{store: s}
}

func (s *MemoryStore) Orders() OrderRepository {
	return &memoryOrderRepo{store: s}
}

type memoryUserRepo struct {
	store *MemoryStore
}

func (r *memoryUserRepo) Create(_ context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Phone == user.Phone {
			return ErrUserExists
		}
		if user.Email != "" && s.users[i].Email == user.Email {
			return ErrUserExists
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users = append(s.users, *user)
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepo) FindByContact(_ context.Context, contact string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Phone == contact {
			user := s.users[i]
			return &user, nil
		}
		if s.users[i].Email != "" && s.users[i].Email == contact {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepo) List(_ context.Context) ([]model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

type memoryOrderRepo struct {
	store *MemoryStore
}

func (r *memoryOrderRepo) Create(_ context.Context, order *model.Order) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextOrderID
	s.nextOrderID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id int64) (*model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *memoryOrderRepo) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []model.Order
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			orders = append(orders, s.orders[i])
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *memoryOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]model.Order, len(s.orders))
	copy(orders, s.orders)
	sortNewestFirst(orders)
	return orders, nil
}

func (r *memoryOrderRepo) MarkDelivered(_ context.Context, id int64, deliveredAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if s.orders[i].Status == model.OrderStatusDelivered {
			return nil
		}
		s.orders[i].Status = model.OrderStatusDelivered
		at := deliveredAt
		s.orders[i].DeliveredAt = &at
		return nil
	}
	return ErrOrderNotFound
}

// sortNewestFirst orders by creation time descending; the stable sort keeps
// insertion order for orders created at the same instant.
func sortNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
