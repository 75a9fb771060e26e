package models

import "time"

// Valid category and condition values. Must stay in sync with the client's
// enumerations.
var (
	Categories = []string{"Books", "Electronics", "Furniture", "Clothing", "Others"}
	Conditions = []string{"New", "Like New", "Used", "Poor"}
)

func ValidCategory(c string) bool { return contains(Categories, c) }

func ValidCondition(c string) bool { return contains(Conditions, c) }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Seller is the public slice of a user embedded in item responses.
type Seller struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	College string `json:"college"`
	Avatar  string `json:"avatar,omitempty"`
}

// Item is a marketplace listing row joined with its seller's public profile.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Images      []string  `json:"images"`
	SellerID    string    `json:"-"`
	Seller      Seller    `json:"seller"`
	Location    string    `json:"location,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	IsSold      bool      `json:"isSold"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Pagination is the page window attached to list responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination computes the window for the given totals. Pages are 1-based.
func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// ItemFilter narrows and orders listing queries. Zero values mean "not set".
type ItemFilter struct {
	Search      string
	Category    string
	Condition   string
	MinPrice    float64
	MaxPrice    float64
	Location    string
	SellerID    string
	IncludeSold bool
	SortBy      string // createdAt | price | title
	SortOrder   string // asc | desc
	Page        int
	Limit       int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps pagination and sorting to supported values.
func (f *ItemFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	switch f.SortBy {
	case "price", "title", "createdAt":
	default:
		f.SortBy = "createdAt"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}
