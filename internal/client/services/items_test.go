package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/campusmarket/internal/client/cache"
	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

type fakeBackend struct {
	item models.Item
	list models.ItemList
	err  error

	gets    []string
	posts   []string
	patches []string
	deletes []string
}

func (f *fakeBackend) Get(ctx context.Context, path string, query url.Values, out any) error {
	f.gets = append(f.gets, path)
	if f.err != nil {
		return f.err
	}
	switch v := out.(type) {
	case *models.ItemList:
		*v = f.list
	case *itemPayload:
		v.Item = f.item
	}
	return nil
}

func (f *fakeBackend) Post(ctx context.Context, path string, body any, out any) error {
	f.posts = append(f.posts, path)
	if f.err != nil {
		return f.err
	}
	if v, ok := out.(*itemPayload); ok {
		v.Item = f.item
	}
	return nil
}

func (f *fakeBackend) Patch(ctx context.Context, path string, body any, out any) error {
	f.patches = append(f.patches, path)
	if f.err != nil {
		return f.err
	}
	if v, ok := out.(*itemPayload); ok {
		v.Item = f.item
	}
	return nil
}

func (f *fakeBackend) Delete(ctx context.Context, path string, out any) error {
	f.deletes = append(f.deletes, path)
	return f.err
}

func newFixture() (*fakeBackend, *cache.Cache, *ItemService) {
	backend := &fakeBackend{
		item: models.Item{ID: "i1", Title: "Desk lamp"},
		list: models.ItemList{
			Items:      []models.Item{{ID: "i1", Title: "Desk lamp"}},
			Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1},
		},
	}
	c := cache.New()
	return backend, c, NewItemService(backend, c)
}

func validDraft() models.ItemDraft {
	return models.ItemDraft{
		Title:       "Desk lamp",
		Description: "Warm light, works fine",
		Price:       10,
		Category:    models.CategoryFurniture,
		Condition:   models.ConditionUsed,
		Images:      []string{"http://s/1.jpg"},
	}
}

func TestListItemsIsCachedPerParams(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.ListItems(ctx, models.ListParams{})
	require.NoError(t, err)
	_, err = svc.ListItems(ctx, models.ListParams{})
	require.NoError(t, err)
	assert.Len(t, backend.gets, 1)

	// different params -> different key -> new request
	_, err = svc.ListItems(ctx, models.ListParams{Page: 2})
	require.NoError(t, err)
	assert.Len(t, backend.gets, 2)
}

func TestGetItemCachedByID(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	item, err := svc.GetItem(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", item.Title)

	_, err = svc.GetItem(ctx, "i1")
	require.NoError(t, err)
	assert.Len(t, backend.gets, 1)

	_, err = svc.GetItem(ctx, "i2")
	require.NoError(t, err)
	assert.Len(t, backend.gets, 2)
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	backend.err = assert.AnError
	_, err := svc.MyItems(ctx)
	require.Error(t, err)

	backend.err = nil
	_, err = svc.MyItems(ctx)
	require.NoError(t, err)
	assert.Len(t, backend.gets, 2)
}

func TestCreateItemInvalidatesCollections(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.ListItems(ctx, models.ListParams{})
	require.NoError(t, err)
	_, err = svc.MyItems(ctx)
	require.NoError(t, err)
	require.Len(t, backend.gets, 2)

	_, err = svc.CreateItem(ctx, validDraft())
	require.NoError(t, err)

	// both collection reads must hit the network again
	_, err = svc.ListItems(ctx, models.ListParams{})
	require.NoError(t, err)
	_, err = svc.MyItems(ctx)
	require.NoError(t, err)
	assert.Len(t, backend.gets, 4)
}

func TestCreateItemRejectsInvalidDraftLocally(t *testing.T) {
	backend, _, svc := newFixture()

	draft := validDraft()
	draft.Title = ""
	_, err := svc.CreateItem(context.Background(), draft)

	require.ErrorIs(t, err, models.ErrTitleRequired)
	assert.Empty(t, backend.posts)
}

func TestFailedMutationDoesNotInvalidate(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.ListItems(ctx, models.ListParams{})
	require.NoError(t, err)
	require.Len(t, backend.gets, 1)

	backend.err = assert.AnError
	_, err = svc.CreateItem(ctx, validDraft())
	require.Error(t, err)
	backend.err = nil

	// still served from cache
	_, err = svc.ListItems(ctx, models.ListParams{})
	require.NoError(t, err)
	assert.Len(t, backend.gets, 1)
}

func TestUpdateItemInvalidatesSingleEntryToo(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.GetItem(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, backend.gets, 1)

	_, err = svc.UpdateItem(ctx, "i1", validDraft())
	require.NoError(t, err)

	_, err = svc.GetItem(ctx, "i1")
	require.NoError(t, err)
	assert.Len(t, backend.gets, 2)
}

func TestDeleteItem(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.GetItem(ctx, "i1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, "i1"))
	assert.Equal(t, []string{"/items/i1"}, backend.deletes)

	_, err = svc.GetItem(ctx, "i1")
	require.NoError(t, err)
	assert.Len(t, backend.gets, 2)
}

func TestMarkSoldHitsSoldEndpoint(t *testing.T) {
	backend, _, svc := newFixture()

	_, err := svc.MarkSold(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/items/i1/sold"}, backend.patches)
}

func TestItemsBySellerCached(t *testing.T) {
	backend, _, svc := newFixture()
	ctx := context.Background()

	_, err := svc.ItemsBySeller(ctx, "u9")
	require.NoError(t, err)
	_, err = svc.ItemsBySeller(ctx, "u9")
	require.NoError(t, err)
	assert.Len(t, backend.gets, 1)
	assert.Equal(t, []string{"/items/seller/u9"}, backend.gets)
}
