package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Register creates the user row plus its single role profile in one
// transaction; if the profile insert fails the user row is rolled back.
// The unique index on email closes the duplicate race: a concurrent
// registration losing the race surfaces as Duplicate here, not upstream.
func (r *UserRepo) Register(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer := u.CustomerProfile
		provider := u.ProviderProfile
		u.CustomerProfile, u.ProviderProfile = nil, nil

		if err := tx.Create(u).Error; err != nil {
			return err
		}
		switch u.Role {
		case domain.RoleCustomer:
			customer.UserID = u.ID
			if err := tx.Create(customer).Error; err != nil {
				return err
			}
			u.CustomerProfile = customer
		case domain.RoleProvider:
			provider.UserID = u.ID
			if err := tx.Create(provider).Error; err != nil {
				return err
			}
			u.ProviderProfile = provider
		}
		return nil
	})
	if err != nil {
		if isDupKey(err) {
			return domain.Duplicate("email already registered")
		}
		return err
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("CustomerProfile").Preload("ProviderProfile").
		First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "verification_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// isDupKey matches unique-violation messages across mysql and postgres
// without depending on gorm.ErrDuplicatedKey version behavior.
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
