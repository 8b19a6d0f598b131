package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scrapiz/database"
	addressRepo "scrapiz/database/repository/address"
	"scrapiz/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrAddressNotFound = errors.New("address not found")
)

// AddressService manages a user's saved pickup addresses.
type AddressService interface {
	List(ctx context.Context, userID string) ([]models.Address, error)
	Get(ctx context.Context, userID, id string) (*models.Address, error)
	Create(ctx context.Context, userID string, in models.AddressInput) (*models.Address, error)
	Update(ctx context.Context, userID, id string, in models.AddressInput) (*models.Address, error)
	Delete(ctx context.Context, userID, id string) error
	SetDefault(ctx context.Context, userID, id string) error
}

type DefaultAddressService struct {
	Repo   addressRepo.AddressRepository
	Logger *zap.Logger
}

func NewAddressService(repo addressRepo.AddressRepository, logger *zap.Logger) *DefaultAddressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAddressService{Repo: repo, Logger: logger}
}

// NormalizeInput trims every field.
func NormalizeInput(in models.AddressInput) models.AddressInput {
	return models.AddressInput{
		Title:       strings.TrimSpace(in.Title),
		AddressLine: strings.TrimSpace(in.AddressLine),
		Area:        strings.TrimSpace(in.Area),
		City:        strings.TrimSpace(in.City),
		PinCode:     strings.TrimSpace(in.PinCode),
	}
}

// ValidateInput requires title, address line, city and pin code. Area is optional.
func ValidateInput(in models.AddressInput) error {
	in = NormalizeInput(in)
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidAddress)
	case in.AddressLine == "":
		return fmt.Errorf("%w: address_line is required", ErrInvalidAddress)
	case in.City == "":
		return fmt.Errorf("%w: city is required", ErrInvalidAddress)
	case in.PinCode == "":
		return fmt.Errorf("%w: pin_code is required", ErrInvalidAddress)
	}
	return nil
}

func optionalArea(area string) *string {
	if area == "" {
		return nil
	}
	return &area
}

func notFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrAddressNotFound
	}
	return err
}

func (s *DefaultAddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultAddressService) Get(ctx context.Context, userID, id string) (*models.Address, error) {
	a, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// Create stores a new address. The user's first address becomes the default.
func (s *DefaultAddressService) Create(ctx context.Context, userID string, in models.AddressInput) (*models.Address, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	in = NormalizeInput(in)

	existing, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &models.Address{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		AddressLine: in.AddressLine,
		Area:        optionalArea(in.Area),
		City:        in.City,
		PinCode:     in.PinCode,
		IsDefault:   existing == 0,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.Logger.Debug("Address created", zap.String("userID", userID), zap.String("addressID", a.ID), zap.Bool("default", a.IsDefault))
	return a, nil
}

func (s *DefaultAddressService) Update(ctx context.Context, userID, id string, in models.AddressInput) (*models.Address, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	in = NormalizeInput(in)

	a, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	a.Title = in.Title
	a.AddressLine = in.AddressLine
	a.Area = optionalArea(in.Area)
	a.City = in.City
	a.PinCode = in.PinCode

	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// Delete removes the address only. Bookings that reference it keep the dangling id.
func (s *DefaultAddressService) Delete(ctx context.Context, userID, id string) error {
	return notFound(s.Repo.Delete(ctx, userID, id))
}

// SetDefault clears every default of the user and then marks id. The two writes are not atomic:
// a failure between them leaves the user with no default address.
func (s *DefaultAddressService) SetDefault(ctx context.Context, userID, id string) error {
	if _, err := s.Repo.GetByID(ctx, userID, id); err != nil {
		return notFound(err)
	}
	if err := s.Repo.UnsetDefaults(ctx, userID); err != nil {
		return err
	}
	if err := s.Repo.MarkDefault(ctx, userID, id); err != nil {
		s.Logger.Error("Default address cleared but not reassigned",
			zap.String("userID", userID), zap.String("addressID", id), zap.Error(err))
		return notFound(err)
	}
	return nil
}
