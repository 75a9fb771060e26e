package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() ItemDraft {
	return ItemDraft{
		Title:       "Calculus textbook",
		Description: "Barely used, 3rd edition",
		Price:       25,
		Category:    CategoryBooks,
		Condition:   ConditionLikeNew,
		Images:      []string{"http://s/1.jpg"},
	}
}

func TestValidateAcceptsGoodDraft(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())
}

func TestValidateFirstViolationWins(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ItemDraft)
		want   error
	}{
		{"empty title", func(d *ItemDraft) { d.Title = "" }, ErrTitleRequired},
		{"empty description", func(d *ItemDraft) { d.Description = "" }, ErrDescriptionRequired},
		{"zero price", func(d *ItemDraft) { d.Price = 0 }, ErrPriceNotPositive},
		{"negative price", func(d *ItemDraft) { d.Price = -1 }, ErrPriceNotPositive},
		{"bad category", func(d *ItemDraft) { d.Category = "Cars" }, ErrBadCategory},
		{"bad condition", func(d *ItemDraft) { d.Condition = "Broken" }, ErrBadCondition},
		{"no images", func(d *ItemDraft) { d.Images = nil }, ErrNoImages},
		{"too many images", func(d *ItemDraft) {
			d.Images = []string{"1", "2", "3", "4", "5", "6"}
		}, ErrTooManyImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			assert.ErrorIs(t, d.Validate(), tt.want)
		})
	}
}

func TestValidateLengthLimits(t *testing.T) {
	d := validDraft()
	d.Title = strings.Repeat("x", TitleMaxLen+1)
	require.Error(t, d.Validate())

	d = validDraft()
	d.Title = strings.Repeat("x", TitleMaxLen)
	require.NoError(t, d.Validate())

	d = validDraft()
	d.Description = strings.Repeat("x", DescriptionMaxLen+1)
	require.Error(t, d.Validate())
}

func TestValidateEmptyBeatsTooLong(t *testing.T) {
	// Empty title fails before the invalid price is even looked at.
	d := validDraft()
	d.Title = ""
	d.Price = -5
	assert.ErrorIs(t, d.Validate(), ErrTitleRequired)
}

func TestCategoryAndConditionValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("Bicycles").Valid())

	for _, c := range Conditions {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Condition("Mint").Valid())
}

func TestListParamsQueryOmitsZeroValues(t *testing.T) {
	q := ListParams{}.Query()
	assert.Empty(t, q.Encode())
}

func TestListParamsQueryIsCanonical(t *testing.T) {
	p := ListParams{
		Search:    "lamp",
		Category:  CategoryFurniture,
		MinPrice:  10.5,
		MaxPrice:  100,
		SortBy:    "price",
		SortOrder: "asc",
		Page:      2,
		Limit:     20,
	}

	// Encode sorts keys, so equal params always yield equal strings.
	assert.Equal(t,
		"category=Furniture&limit=20&maxPrice=100&minPrice=10.5&page=2&search=lamp&sortBy=price&sortOrder=asc",
		p.Query().Encode())
}
