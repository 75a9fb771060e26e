// Package users stores account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/campusmarket/internal/server/models"
)

// Repository is the persistence contract for accounts. Not-found conditions
// surface as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
