package cli

import (
	"context"
	"fmt"
	"strings"
)

// Edit updates an owned listing: edit <id>. Existing images are kept unless
// new paths are given.
func (a *App) Edit(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return
	}
	id := args[0]

	prev, err := a.items.GetItem(ctx, id)
	if err != nil {
		a.Error(errText(err, "Failed to load item"))
		return
	}

	draft, err := a.promptDraft(prev)
	if err != nil {
		a.Error(err.Error())
		return
	}

	paths, err := GetList(a.reader, "Replacement image files (comma-separated, empty keeps current)", a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}
	if len(paths) > 0 {
		a.uploader.Clear()
		if !a.uploadFromPaths(ctx, paths) {
			return
		}
		draft.Images = a.uploader.Images()
	} else {
		draft.Images = prev.Images
	}

	item, err := a.items.UpdateItem(ctx, id, *draft)
	if err != nil {
		a.Error(errText(err, "Failed to update item"))
		return
	}

	a.Success("Item updated!")
	renderItem(a.out, item)
}

// Delete removes an owned listing after confirmation: delete <id>.
func (a *App) Delete(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}
	id := args[0]

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete item %s? (y/N)", id), a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}
	if !strings.EqualFold(answer, "y") {
		return
	}

	if err := a.items.DeleteItem(ctx, id); err != nil {
		a.Error(errText(err, "Failed to delete item"))
		return
	}
	a.Success("Item deleted")
}

// Sold marks an owned listing as sold: sold <id>.
func (a *App) Sold(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: sold <id>")
		return
	}

	item, err := a.items.MarkSold(ctx, args[0])
	if err != nil {
		a.Error(errText(err, "Failed to mark item as sold"))
		return
	}
	a.Success(fmt.Sprintf("Marked %q as sold", item.Title))
}
