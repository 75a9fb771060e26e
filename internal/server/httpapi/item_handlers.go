package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/campusmarket/internal/server/models"
	"github.com/dmitrijs2005/campusmarket/internal/server/services"
)

type itemPayload struct {
	Item *models.Item `json:"item"`
}

type itemListPayload struct {
	Items      []models.Item     `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

type itemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Images      []string `json:"images"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
}

func (r *itemRequest) toInput() *services.ItemInput {
	return &services.ItemInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Condition:   r.Condition,
		Images:      r.Images,
		Location:    r.Location,
		Tags:        r.Tags,
	}
}

// parseFilter reads the listing filter from the query string. Unparseable
// numbers fall back to the zero value rather than erroring.
func parseFilter(c *fiber.Ctx) models.ItemFilter {
	minPrice, _ := strconv.ParseFloat(c.Query("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)

	return models.ItemFilter{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Location:  c.Query("location"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      c.QueryInt("page"),
		Limit:     c.QueryInt("limit"),
	}
}

func (s *Server) list(c *fiber.Ctx, filter models.ItemFilter) error {
	items, pagination, err := s.items.List(c.Context(), filter)
	if err != nil {
		return s.fail(c, err)
	}
	return respondOK(c, fiber.StatusOK, itemListPayload{Items: items, Pagination: pagination})
}

// ListItems handles GET /api/items.
func (s *Server) ListItems(c *fiber.Ctx) error {
	return s.list(c, parseFilter(c))
}

// ItemsBySeller handles GET /api/items/seller/:id. Sold listings stay
// visible on a seller's page.
func (s *Server) ItemsBySeller(c *fiber.Ctx) error {
	filter := parseFilter(c)
	filter.SellerID = c.Params("id")
	filter.IncludeSold = true
	return s.list(c, filter)
}

// MyItems handles GET /api/items/user/my-items.
func (s *Server) MyItems(c *fiber.Ctx) error {
	filter := parseFilter(c)
	filter.SellerID = currentUserID(c)
	filter.IncludeSold = true
	return s.list(c, filter)
}

// GetItem handles GET /api/items/:id.
func (s *Server) GetItem(c *fiber.Ctx) error {
	item, err := s.items.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return respondOK(c, fiber.StatusOK, itemPayload{Item: item})
}

// CreateItem handles POST /api/items.
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := s.items.Create(c.Context(), currentUserID(c), req.toInput())
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusCreated, itemPayload{Item: item})
}

// UpdateItem handles PATCH /api/items/:id.
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := s.items.Update(c.Context(), currentUserID(c), c.Params("id"), req.toInput())
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusOK, itemPayload{Item: item})
}

// DeleteItem handles DELETE /api/items/:id.
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	if err := s.items.Delete(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Message: "Item deleted"})
}

// MarkItemSold handles PATCH /api/items/:id/sold.
func (s *Server) MarkItemSold(c *fiber.Ctx) error {
	item, err := s.items.MarkSold(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return respondOK(c, fiber.StatusOK, itemPayload{Item: item})
}
