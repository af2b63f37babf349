package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository owns the transactional account lifecycle. Every user row
// is created, saved, and deleted together with its one-to-one profile, so the
// "one profile per user" invariant can never be violated undetected.
type AccountRepository interface {
	Register(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID uint) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Register persists a new user and provisions its profile in one transaction.
// Provisioning runs exactly once, here and nowhere else; a profile failure
// rolls back the user row and surfaces as PROVISIONING_FAILURE.
func (r *accountRepository) Register(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewValidationError("User already exists")
			}
			return models.NewInternalError(err)
		}

		profile := &models.Profile{UserID: user.ID}
		if err := tx.Create(profile).Error; err != nil {
			return models.NewProvisioningError(err)
		}
		user.Profile = profile
		return nil
	})
}

// Save persists the user and re-saves its profile in one transaction. It
// never creates a second profile: the existing row is loaded when the caller
// did not carry it.
func (r *accountRepository) Save(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewValidationError("Username or email already taken")
			}
			return models.NewInternalError(err)
		}

		if user.Profile == nil {
			var profile models.Profile
			if err := tx.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
				return models.NewProvisioningError(err)
			}
			user.Profile = &profile
		}
		if err := tx.Save(user.Profile).Error; err != nil {
			return models.NewProvisioningError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateProfile(ctx, user.ID)
	return nil
}

// Delete removes the user's posts, profile, and user row in one transaction.
// The cascade is an explicit application-level rule rather than a database
// foreign-key action.
func (r *accountRepository) Delete(ctx context.Context, userID uint) error {
	var postIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return models.NewInternalError(err)
		}

		res := tx.Delete(&models.User{}, userID)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User", userID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range postIDs {
		cache.InvalidatePost(ctx, id)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}
