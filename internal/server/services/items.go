package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/campusmarket/internal/common"
	"github.com/dmitrijs2005/campusmarket/internal/server/cache"
	"github.com/dmitrijs2005/campusmarket/internal/server/models"
	"github.com/dmitrijs2005/campusmarket/internal/server/repositories/items"
)

// ValidationError carries a message safe to show to the end user. Handlers
// turn it into a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }

// ItemInput is the writable slice of a listing.
type ItemInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	Images      []string
	Location    string
	Tags        []string
}

const (
	titleMaxLen       = 100
	descriptionMaxLen = 2000
	maxImagesPerItem  = 5
)

func (in *ItemInput) validate() error {
	switch {
	case in.Title == "":
		return validationErr("Title is required")
	case len(in.Title) > titleMaxLen:
		return validationErr(fmt.Sprintf("Title must be at most %d characters", titleMaxLen))
	case in.Description == "":
		return validationErr("Description is required")
	case len(in.Description) > descriptionMaxLen:
		return validationErr(fmt.Sprintf("Description must be at most %d characters", descriptionMaxLen))
	case in.Price <= 0:
		return validationErr("Price must be greater than 0")
	case !models.ValidCategory(in.Category):
		return validationErr("Invalid category")
	case !models.ValidCondition(in.Condition):
		return validationErr("Invalid condition")
	case len(in.Images) == 0:
		return validationErr("At least one image is required")
	case len(in.Images) > maxImagesPerItem:
		return validationErr(fmt.Sprintf("Maximum %d images allowed per item", maxImagesPerItem))
	}
	return nil
}

// ItemService implements listing CRUD with ownership checks and a
// cache-aside layer over the repository.
type ItemService struct {
	repo  items.Repository
	cache *cache.Cache
}

func NewItemService(repo items.Repository, c *cache.Cache) *ItemService {
	return &ItemService{repo: repo, cache: c}
}

type listResult struct {
	Items      []models.Item     `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

// List returns one page of listings plus the pagination window, served from
// redis when a fresh copy exists.
func (s *ItemService) List(ctx context.Context, filter models.ItemFilter) ([]models.Item, models.Pagination, error) {
	filter.Normalize()
	key := listCacheKey(filter)

	var cached listResult
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached.Items, cached.Pagination, nil
	}

	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if list == nil {
		list = []models.Item{}
	}

	pagination := models.NewPagination(filter.Page, filter.Limit, total)
	s.cache.SetJSON(ctx, key, listResult{Items: list, Pagination: pagination}, cache.DefaultTTL)

	return list, pagination, nil
}

func (s *ItemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	key := itemCacheKey(id)

	var cached models.Item
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, item, cache.DefaultTTL)
	return item, nil
}

func (s *ItemService) Create(ctx context.Context, sellerID string, in *ItemInput) (*models.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item := &models.Item{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Condition:   in.Condition,
		Images:      in.Images,
		SellerID:    sellerID,
		Location:    in.Location,
		Tags:        in.Tags,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}

	s.invalidate(ctx, item.ID)

	// re-read to pick up the seller join
	return s.repo.GetByID(ctx, item.ID)
}

func (s *ItemService) Update(ctx context.Context, userID, id string, in *ItemInput) (*models.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	item.Title = in.Title
	item.Description = in.Description
	item.Price = in.Price
	item.Category = in.Category
	item.Condition = in.Condition
	item.Images = in.Images
	item.Location = in.Location
	item.Tags = in.Tags

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("error updating item: %w", err)
	}

	s.invalidate(ctx, id)
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedItem(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting item: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ItemService) MarkSold(ctx context.Context, userID, id string) (*models.Item, error) {
	item, err := s.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkSold(ctx, id); err != nil {
		return nil, fmt.Errorf("error marking item sold: %w", err)
	}

	s.invalidate(ctx, id)
	item.IsSold = true
	return item, nil
}

// ownedItem loads the item and checks the caller is its seller. Foreign items
// yield ErrorForbidden.
func (s *ItemService) ownedItem(ctx context.Context, userID, id string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.SellerID != userID {
		return nil, common.ErrorForbidden
	}
	return item, nil
}

func (s *ItemService) invalidate(ctx context.Context, id string) {
	s.cache.InvalidatePrefix(ctx, listCachePrefix)
	s.cache.InvalidatePrefix(ctx, itemCacheKey(id))
}

const listCachePrefix = "items:list:"

func listCacheKey(filter models.ItemFilter) string {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("search", filter.Search)
	set("category", filter.Category)
	set("condition", filter.Condition)
	if filter.MinPrice > 0 {
		v.Set("minPrice", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		v.Set("maxPrice", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	set("location", filter.Location)
	set("sellerId", filter.SellerID)
	if filter.IncludeSold {
		v.Set("includeSold", "true")
	}
	v.Set("sortBy", filter.SortBy)
	v.Set("sortOrder", filter.SortOrder)
	v.Set("page", strconv.Itoa(filter.Page))
	v.Set("limit", strconv.Itoa(filter.Limit))

	return listCachePrefix + v.Encode()
}

func itemCacheKey(id string) string { return "items:id:" + id }

// IsValidation reports whether err is a user-facing validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
