package models

import (
	"errors"
	"fmt"
	"time"
)

// Category enumerates the listing categories supported by the backend.
type Category string

const (
	CategoryBooks       Category = "Books"
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
	CategoryOthers      Category = "Others"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryBooks, CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryOthers,
}

// Condition enumerates the wear states a listing can declare.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionUsed    Condition = "Used"
	ConditionPoor    Condition = "Poor"
)

// Conditions lists all valid conditions in display order.
var Conditions = []Condition{ConditionNew, ConditionLikeNew, ConditionUsed, ConditionPoor}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Seller is the embedded public view of an item's owner.
type Seller struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	College string `json:"college"`
	Avatar  string `json:"avatar,omitempty"`
}

// Item is a marketplace listing. Mutated only through the backend; the client
// holds cached copies.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	Images      []string  `json:"images"`
	Seller      Seller    `json:"seller"`
	Location    string    `json:"location,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	IsSold      bool      `json:"isSold"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Pagination describes the backend's page window for list responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// ItemList is the payload of listing reads.
type ItemList struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// ItemDraft is the create/update request body. For updates, Images holds the
// already-uploaded URL list.
type ItemDraft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Condition   Condition `json:"condition"`
	Images      []string  `json:"images"`
	Location    string    `json:"location,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 2000
	MaxImagesPerItem  = 5
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrPriceNotPositive    = errors.New("price must be greater than 0")
	ErrNoImages            = errors.New("at least one image is required")
	ErrTooManyImages       = fmt.Errorf("maximum %d images allowed per item", MaxImagesPerItem)
	ErrBadCategory         = errors.New("invalid category")
	ErrBadCondition        = errors.New("invalid condition")
)

// Validate checks the draft locally so obviously invalid listings never reach
// the network. First violation wins.
func (d *ItemDraft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if len(d.Title) > TitleMaxLen {
		return fmt.Errorf("title must be at most %d characters", TitleMaxLen)
	}
	if d.Description == "" {
		return ErrDescriptionRequired
	}
	if len(d.Description) > DescriptionMaxLen {
		return fmt.Errorf("description must be at most %d characters", DescriptionMaxLen)
	}
	if d.Price <= 0 {
		return ErrPriceNotPositive
	}
	if !d.Category.Valid() {
		return ErrBadCategory
	}
	if !d.Condition.Valid() {
		return ErrBadCondition
	}
	if len(d.Images) == 0 {
		return ErrNoImages
	}
	if len(d.Images) > MaxImagesPerItem {
		return ErrTooManyImages
	}
	return nil
}
