package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velstra/streetwear-shop/internal/domain/models"
	"github.com/velstra/streetwear-shop/internal/storage"
)

// Profile is the user-facing slice of the account, without credentials.
type Profile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ProfileService serves the account page: profile fields and saved addresses.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, name, phone string) error
	GetAddresses(ctx context.Context, userID int64) ([]*models.Address, error)
	AddAddress(ctx context.Context, addr *models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID int64) error
}

type profileService struct {
	log         *slog.Logger
	userRepo    storage.UserStorage
	addressRepo storage.AddressStorage
}

func NewProfileService(log *slog.Logger, userRepo storage.UserStorage, addressRepo storage.AddressStorage) ProfileService {
	return &profileService{
		log:         log,
		userRepo:    userRepo,
		addressRepo: addressRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	const op = "service.ProfileService.GetProfile"

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		s.log.Error("failed to get user", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Profile{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Phone: user.Phone,
	}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, name, phone string) error {
	const op = "service.ProfileService.UpdateProfile"

	if name == "" {
		return fmt.Errorf("%s: name is required: %w", op, ErrInvalidRequest)
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, name, phone); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		s.log.Error("failed to update profile", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *profileService) GetAddresses(ctx context.Context, userID int64) ([]*models.Address, error) {
	const op = "service.ProfileService.GetAddresses"

	addrs, err := s.addressRepo.GetAddressesByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get addresses", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return addrs, nil
}

func (s *profileService) AddAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	const op = "service.ProfileService.AddAddress"

	if addr.Line1 == "" || addr.City == "" || addr.PostalCode == "" {
		return nil, fmt.Errorf("%s: line1, city and postal code are required: %w", op, ErrInvalidRequest)
	}
	created, err := s.addressRepo.CreateAddress(ctx, addr)
	if err != nil {
		s.log.Error("failed to add address", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s *profileService) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	const op = "service.ProfileService.DeleteAddress"

	if err := s.addressRepo.DeleteAddress(ctx, addressID, userID); err != nil {
		if errors.Is(err, storage.ErrAddressNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrAddressNotFound)
		}
		s.log.Error("failed to delete address", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
