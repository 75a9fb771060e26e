package models

import (
	"net/url"
	"strconv"
)

// ListParams are the filters accepted by the listing endpoint. Zero values
// mean "not set" and are omitted from the query string.
type ListParams struct {
	Search    string
	Category  Category
	Condition Condition
	MinPrice  float64
	MaxPrice  float64
	Location  string
	SortBy    string // createdAt | price | title
	SortOrder string // asc | desc
	Page      int
	Limit     int
}

// Query encodes the parameters as URL query values. url.Values.Encode sorts
// keys, so the encoding is canonical and safe to use inside cache keys.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", string(p.Category))
	}
	if p.Condition != "" {
		q.Set("condition", string(p.Condition))
	}
	if p.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(p.MaxPrice, 'f', -1, 64))
	}
	if p.Location != "" {
		q.Set("location", p.Location)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}
