package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bakery-shop/internal/dto"
	"bakery-shop/internal/model"
	"bakery-shop/internal/repository"
	"bakery-shop/internal/token"
)

const minPasswordLength = 6

// defaultCountry is fixed for every account; the shop delivers locally.
const defaultCountry = "Deutschland"

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	// ErrInvalidCredentials deliberately covers both an unknown contact and
	// a wrong password, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, contact, password string) (*model.User, string, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

type authServiceImpl struct {
	userRepo      repository.UserRepository
	tokens        *token.Codec
	adminContacts map[string]struct{}
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Codec, adminContacts []string) AuthService {
	admins := make(map[string]struct{}, len(adminContacts))
	for _, contact := range adminContacts {
		if contact != "" {
			admins[contact] = struct{}{}
		}
	}

	return &authServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		adminContacts: admins,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, string, error) {
	if req.Password != req.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		BirthDate:    req.BirthDate,
		PasswordHash: string(hash),
		Street:       req.Street,
		HouseNumber:  req.HouseNumber,
		Apartment:    req.Apartment,
		PostalCode:   req.PostalCode,
		City:         req.City,
		State:        req.State,
		Country:      defaultCountry,
		Newsletter:   req.Newsletter,
		Role:         s.roleFor(req.Phone, req.Email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

func (s *authServiceImpl) Login(ctx context.Context, contact, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByContact(ctx, contact)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tok, nil
}

func (s *authServiceImpl) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// roleFor bootstraps the admin role from the configured contact allowlist;
// everyone else is a customer.
func (s *authServiceImpl) roleFor(phone, email string) model.Role {
	if _, ok := s.adminContacts[phone]; ok {
		return model.RoleAdmin
	}
	if email != "" {
		if _, ok := s.adminContacts[email]; ok {
			return model.RoleAdmin
		}
	}
	return model.RoleCustomer
}
