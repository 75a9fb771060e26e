package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/campusmarket/internal/client/api"
	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

// Post walks the user through creating a listing: images first (uploaded as
// one batch), then the item fields. The draft is validated locally before the
// create request goes out.
func (a *App) Post(ctx context.Context) {
	a.uploader.Clear()

	paths, err := GetList(a.reader, "Image files (comma-separated paths, 1-5)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if !a.uploadFromPaths(ctx, paths) {
		return
	}

	draft, err := a.promptDraft(nil)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	draft.Images = a.uploader.Images()

	item, err := a.items.CreateItem(ctx, *draft)
	if err != nil {
		a.Error(errText(err, "Failed to post item"))
		return
	}

	a.Success("Item posted!")
	renderItem(a.out, item)
	a.uploader.Clear()
}

// promptDraft collects listing fields, offering prior values as defaults when
// editing an existing item.
func (a *App) promptDraft(prev *models.Item) (*models.ItemDraft, error) {
	draft := &models.ItemDraft{}

	var err error
	if prev != nil {
		draft.Title, err = GetOptionalText(a.reader, fmt.Sprintf("Title [%s]", prev.Title), prev.Title, a.out)
	} else {
		draft.Title, err = GetSimpleText(a.reader, "Title", a.out)
	}
	if err != nil {
		return nil, err
	}

	if prev != nil {
		draft.Description, err = GetOptionalText(a.reader, "Description [keep current]", prev.Description, a.out)
	} else {
		draft.Description, err = GetSimpleText(a.reader, "Description", a.out)
	}
	if err != nil {
		return nil, err
	}

	draft.Price, err = GetPrice(a.reader, "Price", a.out)
	if err != nil {
		return nil, err
	}

	category, err := GetChoice(a.reader, "Category", categoryOptions(), a.out)
	if err != nil {
		return nil, err
	}
	draft.Category = models.Category(category)

	condition, err := GetChoice(a.reader, "Condition", conditionOptions(), a.out)
	if err != nil {
		return nil, err
	}
	draft.Condition = models.Condition(condition)

	draft.Location, err = GetOptionalText(a.reader, "Location (optional)", "", a.out)
	if err != nil {
		return nil, err
	}

	draft.Tags, err = GetList(a.reader, "Tags (comma-separated, optional)", a.out)
	if err != nil {
		return nil, err
	}

	return draft, nil
}

// uploadFromPaths reads local files and pushes them through the upload
// helper. Validation (type, size, count) happens in the helper before any
// network call.
func (a *App) uploadFromPaths(ctx context.Context, paths []string) bool {
	if len(paths) == 0 {
		a.Error(models.ErrNoImages.Error())
		return false
	}

	files := make([]api.FileUpload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			a.Error(fmt.Sprintf("Cannot read %s: %v", p, err))
			return false
		}
		files = append(files, api.FileUpload{
			Name:        filepath.Base(p),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Data:        data,
		})
	}

	return a.uploader.Upload(ctx, files) == nil
}

func categoryOptions() []string {
	out := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = string(c)
	}
	return out
}

func conditionOptions() []string {
	out := make([]string, len(models.Conditions))
	for i, c := range models.Conditions {
		out[i] = string(c)
	}
	return out
}

func errText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
