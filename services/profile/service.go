package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scrapiz/database"
	profileRepo "scrapiz/database/repository/profile"
	"scrapiz/models"

	"go.uber.org/zap"
)

var ErrInvalidProfile = errors.New("invalid profile")

type ProfileService interface {
	// Get returns the stored profile, or the defaults when none exists yet.
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.Profile, error)
	RegisterDevice(ctx context.Context, userID, fcmToken string) error
}

type DefaultProfileService struct {
	Repo   profileRepo.ProfileRepository
	Logger *zap.Logger
}

func NewProfileService(repo profileRepo.ProfileRepository, logger *zap.Logger) *DefaultProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultProfileService{Repo: repo, Logger: logger}
}

func (s *DefaultProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		d := models.DefaultProfile(userID)
		return &d, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

// Update is a read-modify-write of the whole profile. Role and device token are never taken from the request.
func (s *DefaultProfileService) Update(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.Profile, error) {
	if req.PreferredLanguage != nil && !req.PreferredLanguage.Valid() {
		return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidProfile, *req.PreferredLanguage)
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		p.FullName = trimmed(req.FullName)
	}
	if req.Phone != nil {
		p.Phone = trimmed(req.Phone)
	}
	if req.PinCode != nil {
		p.PinCode = trimmed(req.PinCode)
	}
	if req.PreferredLanguage != nil {
		p.PreferredLanguage = *req.PreferredLanguage
	}
	if req.PushNotificationsEnabled != nil {
		p.PushNotificationsEnabled = *req.PushNotificationsEnabled
	}
	if req.Location != nil {
		loc := *req.Location
		p.Location = &loc
	}

	if err := s.Repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DefaultProfileService) RegisterDevice(ctx context.Context, userID, fcmToken string) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return fmt.Errorf("%w: fcm_token is required", ErrInvalidProfile)
	}
	return s.Repo.UpdateFCMToken(ctx, userID, fcmToken)
}
