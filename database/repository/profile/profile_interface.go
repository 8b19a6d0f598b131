package profileRepo

import (
	"context"

	"scrapiz/models"
)

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	// Upsert writes the whole profile, creating it when missing.
	Upsert(ctx context.Context, profile *models.Profile) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	Count(ctx context.Context) (int64, error)
}
