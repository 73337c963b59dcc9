package listings

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"atlas-backend/internal/pkg/response"
	"atlas-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the listings CRUD over REST.
type Handlers struct {
	Service *Service
	Uploads *uploads.Service
}

// List GET /api/listings — array of listings, pinned first, newest first.
func (h *Handlers) List(c *fiber.Ctx) error {
	listings, err := h.Service.ListAll(c.Context())
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(listings)
}

// GetOne GET /api/listings/:id — the listing, or 404 with a null body.
func (h *Handlers) GetOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid listing id")
	}
	listing, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(nil)
		}
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(listing)
}

// Create POST /api/listings — multipart fields plus one or more image files.
func (h *Handlers) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "multipart form required")
	}

	in := inputFromForm(c)
	if err := in.validateRequired(); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	files := imageFiles(form)
	if len(files) == 0 {
		return response.Error(c, fiber.StatusBadRequest, ErrNoImages.Error())
	}

	paths, err := h.Uploads.SaveAll(files)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	in.ImagePaths = paths

	listing, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{
		"message": "success",
		"data":    fiber.Map{"id": listing.ID},
	})
}

// Update PUT /api/listings/:id — same multipart fields; image files optional.
// An unknown id is a soft no-op reported as changes: 0.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid listing id")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "multipart form required")
	}

	in := inputFromForm(c)
	if err := in.validateRequired(); err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if files := imageFiles(form); len(files) > 0 {
		paths, err := h.Uploads.SaveAll(files)
		if err != nil {
			return response.Error(c, fiber.StatusBadRequest, err.Error())
		}
		in.ImagePaths = paths
	}

	changes, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "success", "changes": changes})
}

// TogglePin PATCH /api/listings/:id/toggle-pin
func (h *Handlers) TogglePin(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid listing id")
	}
	pinned, err := h.Service.TogglePin(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.Error(c, fiber.StatusNotFound, ErrNotFound.Error())
		}
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "success", "pinned": pinned})
}

// Delete DELETE /api/listings/:id — changes: 0 when the id does not exist.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid listing id")
	}
	changes, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"message": "success", "changes": changes})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func inputFromForm(c *fiber.Ctx) ListingInput {
	pinned, _ := strconv.ParseBool(strings.TrimSpace(c.FormValue("pinned")))
	return ListingInput{
		Title:       c.FormValue("title"),
		Condition:   c.FormValue("condition"),
		Price:       c.FormValue("price"),
		OldPrice:    c.FormValue("old_price"),
		Category:    c.FormValue("category"),
		Fits:        c.FormValue("fits"),
		Location:    c.FormValue("location"),
		Description: c.FormValue("description"),
		Pinned:      pinned,
	}
}

func imageFiles(form *multipart.Form) []*multipart.FileHeader {
	files := form.File["images"]
	if len(files) == 0 {
		// the first admin build posted a single "image" field
		files = form.File["image"]
	}
	return files
}
