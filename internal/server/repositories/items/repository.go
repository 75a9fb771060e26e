// Package items stores marketplace listings.
package items

import (
	"context"

	"github.com/dmitrijs2005/campusmarket/internal/server/models"
)

// Repository is the persistence contract for listings. Reads join the
// seller's public profile. Not-found conditions surface as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
	MarkSold(ctx context.Context, id string) error
	// List returns one page of items matching the filter plus the total
	// match count.
	List(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error)
}
