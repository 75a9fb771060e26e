package httpapi

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/campusmarket/internal/server/services"
)

type uploadPayload struct {
	Images []string `json:"images"`
}

// UploadImages handles POST /api/upload/images. Expects a multipart form
// with one or more parts under the "images" field.
func (s *Server) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid multipart form")
	}

	parts := form.File["images"]
	if len(parts) == 0 {
		return respondError(c, fiber.StatusBadRequest, "At least one image is required")
	}

	files := make([]services.FileUpload, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Could not read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Could not read uploaded file")
		}
		files = append(files, services.FileUpload{Name: part.Filename, Data: data})
	}

	urls, err := s.uploads.Store(c.Context(), files)
	if err != nil {
		return s.fail(c, err)
	}

	return respondOK(c, fiber.StatusOK, uploadPayload{Images: urls})
}
