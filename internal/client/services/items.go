// Package services contains the client's screen-facing operations: cached
// reads keyed by operation+parameters and mutations that invalidate the
// collections they affect.
package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/campusmarket/internal/client/api"
	"github.com/dmitrijs2005/campusmarket/internal/client/cache"
	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

// Backend is the slice of the HTTP client the services need.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Patch(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Cache key operation names. Mutations invalidate by these prefixes.
const (
	opItemsList     = "items.list"
	opItemByID      = "items.byId"
	opItemsBySeller = "items.bySeller"
	opItemsMine     = "items.mine"
)

// itemPayload and related wrappers mirror the backend's data envelopes.
type itemPayload struct {
	Item models.Item `json:"item"`
}

// ItemService exposes listing reads and owner mutations.
type ItemService struct {
	backend Backend
	cache   *cache.Cache
}

func NewItemService(backend Backend, c *cache.Cache) *ItemService {
	return &ItemService{backend: backend, cache: c}
}

// ListItems returns the public listing for the given filters. Results are
// cached per filter set; concurrent equal-key reads share one request.
func (s *ItemService) ListItems(ctx context.Context, params models.ListParams) (*models.ItemList, error) {
	q := params.Query()
	key := cache.Key(opItemsList, q.Encode())
	v, err := s.cache.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		var list models.ItemList
		if err := s.backend.Get(ctx, api.EndpointItems, q, &list); err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ItemList), nil
}

// GetItem returns a single listing by id.
func (s *ItemService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	key := itemKey(id)
	v, err := s.cache.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		var payload itemPayload
		if err := s.backend.Get(ctx, api.EndpointItemByID(id), nil, &payload); err != nil {
			return nil, err
		}
		return &payload.Item, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Item), nil
}

// ItemsBySeller returns another seller's listings.
func (s *ItemService) ItemsBySeller(ctx context.Context, sellerID string) (*models.ItemList, error) {
	q := url.Values{"sellerId": {sellerID}}
	key := cache.Key(opItemsBySeller, q.Encode())
	v, err := s.cache.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		var list models.ItemList
		if err := s.backend.Get(ctx, api.EndpointItemsBySeller(sellerID), nil, &list); err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ItemList), nil
}

// MyItems returns the authenticated user's own listings, sold included.
func (s *ItemService) MyItems(ctx context.Context) (*models.ItemList, error) {
	v, err := s.cache.GetOrFetch(ctx, opItemsMine, func(ctx context.Context) (any, error) {
		var list models.ItemList
		if err := s.backend.Get(ctx, api.EndpointMyItems, nil, &list); err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ItemList), nil
}

// CreateItem validates the draft locally, posts it, and invalidates the
// listing collections so subsequent reads refetch. Invalidation runs only
// after the mutation's success response.
func (s *ItemService) CreateItem(ctx context.Context, draft models.ItemDraft) (*models.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var payload itemPayload
	if err := s.backend.Post(ctx, api.EndpointItems, draft, &payload); err != nil {
		return nil, err
	}
	s.invalidateCollections()
	return &payload.Item, nil
}

// UpdateItem validates and patches an owned listing, then invalidates the
// collections and the single-item entry.
func (s *ItemService) UpdateItem(ctx context.Context, id string, draft models.ItemDraft) (*models.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var payload itemPayload
	if err := s.backend.Patch(ctx, api.EndpointItemByID(id), draft, &payload); err != nil {
		return nil, err
	}
	s.invalidateCollections()
	s.cache.Invalidate(itemKey(id))
	return &payload.Item, nil
}

// DeleteItem removes an owned listing.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, api.EndpointItemByID(id), nil); err != nil {
		return err
	}
	s.invalidateCollections()
	s.cache.Invalidate(itemKey(id))
	return nil
}

// MarkSold flags an owned listing as sold.
func (s *ItemService) MarkSold(ctx context.Context, id string) (*models.Item, error) {
	var payload itemPayload
	if err := s.backend.Patch(ctx, api.EndpointItemSold(id), nil, &payload); err != nil {
		return nil, err
	}
	s.invalidateCollections()
	s.cache.Invalidate(itemKey(id))
	return &payload.Item, nil
}

func (s *ItemService) invalidateCollections() {
	s.cache.InvalidateOp(opItemsList)
	s.cache.InvalidateOp(opItemsMine)
	s.cache.InvalidateOp(opItemsBySeller)
}

func itemKey(id string) string {
	return cache.Key(opItemByID, url.Values{"id": {id}}.Encode())
}
