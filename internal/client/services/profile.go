package services

import (
	"context"

	"github.com/dmitrijs2005/campusmarket/internal/client/api"
	"github.com/dmitrijs2005/campusmarket/internal/client/cache"
	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

// ProfileService covers the authenticated user's own account.
type ProfileService struct {
	backend Backend
	cache   *cache.Cache
}

func NewProfileService(backend Backend, c *cache.Cache) *ProfileService {
	return &ProfileService{backend: backend, cache: c}
}

// UpdateProfile patches the editable profile fields. Listing caches are
// invalidated because items embed the seller's public profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var resp models.AuthResponse
	if err := s.backend.Patch(ctx, api.EndpointUpdateProfile, update, &resp); err != nil {
		return nil, err
	}
	s.cache.InvalidateOp(opItemsList)
	s.cache.InvalidateOp(opItemsMine)
	s.cache.InvalidateOp(opItemsBySeller)
	return &resp.User, nil
}

// ChangePassword swaps the account password. No cache effect.
func (s *ProfileService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	return s.backend.Post(ctx, api.EndpointChangePassword, change, nil)
}
