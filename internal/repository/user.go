package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bakery-shop/internal/model"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
)

type UserRepository interface {
	// Create assigns the next identifier and inserts the record. The
	// uniqueness check on the contact fields and the insert are one atomic
	// unit; a duplicate yields ErrUserExists and no write.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// FindByContact matches either the phone number or the email.
	FindByContact(ctx context.Context, contact string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("phone = ?", user.Phone).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserExists
		}

		if user.Email != "" {
			if err := tx.Model(&model.User{}).
				Where("email = ?", user.Email).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrUserExists
			}
		}

		return tx.Create(user).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return err
}

func (r *userRepoImpl) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByContact(ctx context.Context, contact string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("phone = ?", contact).
		Or("email <> '' AND email = ?", contact).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}
