package addressRepo

import (
	"context"

	"scrapiz/models"
)

// AddressRepository defines methods for address data access. Every call is scoped to one user.
type AddressRepository interface {
	// ListByUser returns the user's addresses, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	GetByID(ctx context.Context, userID, id string) (*models.Address, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, userID, id string) error
	// UnsetDefaults clears is_default on every address of the user.
	UnsetDefaults(ctx context.Context, userID string) error
	// MarkDefault sets is_default on a single address.
	MarkDefault(ctx context.Context, userID, id string) error
}
