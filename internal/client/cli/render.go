package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

func renderList(w io.Writer, list *models.ItemList) {
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "No items found. Try adjusting your search or category filter.")
		return
	}
	for _, item := range list.Items {
		sold := ""
		if item.IsSold {
			sold = " [SOLD]"
		}
		fmt.Fprintf(w, "%s  %-30s  $%.2f  %s/%s%s\n",
			item.ID, truncate(item.Title, 30), item.Price, item.Category, item.Condition, sold)
	}
	p := list.Pagination
	fmt.Fprintf(w, "page %d of %d (%d items)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func renderItem(w io.Writer, item *models.Item) {
	fmt.Fprintf(w, "%s\n", item.Title)
	fmt.Fprintf(w, "  price:     $%.2f\n", item.Price)
	fmt.Fprintf(w, "  category:  %s\n", item.Category)
	fmt.Fprintf(w, "  condition: %s\n", item.Condition)
	if item.Location != "" {
		fmt.Fprintf(w, "  location:  %s\n", item.Location)
	}
	if len(item.Tags) > 0 {
		fmt.Fprintf(w, "  tags:      %s\n", strings.Join(item.Tags, ", "))
	}
	fmt.Fprintf(w, "  seller:    %s (%s)\n", item.Seller.Name, item.Seller.College)
	if item.IsSold {
		fmt.Fprintln(w, "  status:    SOLD")
	}
	fmt.Fprintf(w, "  images:\n")
	for i, url := range item.Images {
		fmt.Fprintf(w, "    %d. %s\n", i+1, url)
	}
	fmt.Fprintf(w, "\n%s\n", item.Description)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
