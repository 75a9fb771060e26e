package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

// Browse lists items, optionally filtered: browse [category] [page].
func (a *App) Browse(ctx context.Context, args []string) {
	params := models.ListParams{}
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			params.Page = n
			continue
		}
		c := models.Category(arg)
		if !c.Valid() {
			// Accept lowercase spellings from the prompt.
			c = models.Category(strings.ToUpper(arg[:1]) + strings.ToLower(arg[1:]))
		}
		if c.Valid() {
			params.Category = c
		} else {
			fmt.Fprintf(a.out, "Unknown category %q. Valid: %v\n", arg, models.Categories)
			return
		}
	}

	list, err := a.items.ListItems(ctx, params)
	if err != nil {
		log.Println(err.Error())
		return
	}
	renderList(a.out, list)
}

// Search lists items matching the given text: search <terms...>.
func (a *App) Search(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: search <text>")
		return
	}
	list, err := a.items.ListItems(ctx, models.ListParams{Search: strings.Join(args, " ")})
	if err != nil {
		log.Println(err.Error())
		return
	}
	renderList(a.out, list)
}

// Show prints a single item: show <id>.
func (a *App) Show(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}
	item, err := a.items.GetItem(ctx, args[0])
	if err != nil {
		log.Println(err.Error())
		return
	}
	renderItem(a.out, item)
}

// Seller lists another seller's items: seller <id>.
func (a *App) Seller(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: seller <id>")
		return
	}
	list, err := a.items.ItemsBySeller(ctx, args[0])
	if err != nil {
		log.Println(err.Error())
		return
	}
	renderList(a.out, list)
}

// Mine lists the authenticated user's own items, sold included.
func (a *App) Mine(ctx context.Context) {
	list, err := a.items.MyItems(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	renderList(a.out, list)
}
