package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID uint
	Bio    string
	Avatar string
}

const maxBioLen = 500

func NewAccountService(accountRepo repository.AccountRepository, userRepo repository.UserRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, userRepo: userRepo}
}

// Register creates a new account. The companion profile is provisioned by the
// account repository inside the same transaction as the user row.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists")
	}

	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.accountRepo.Register(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *AccountService) GetAccount(ctx context.Context, userID uint) (*models.User, error) {
	return s.accountRepo.GetByID(ctx, userID)
}

// UpdateProfile mutates the profile fields and saves user and profile
// together, per the persist-on-every-save contract.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.accountRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	if user.Profile != nil {
		if in.Bio != "" {
			user.Profile.Bio = in.Bio
		}
		if in.Avatar != "" {
			user.Profile.Avatar = in.Avatar
		}
	}

	if err := s.accountRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and, with it, every post the user
// authored.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.accountRepo.Delete(ctx, userID)
}
