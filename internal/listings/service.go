package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"atlas-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("listing not found")
	ErrNoImages = errors.New("at least one image is required")
)

// Service owns listing rows: ordering, image-column serialization, and the
// required-field rules.
type Service struct {
	DB *gorm.DB
}

// ListingInput carries the editable fields. ImagePaths is the ordered list of
// stored upload paths; empty means "leave image fields untouched" on update.
type ListingInput struct {
	Title       string
	Condition   string
	Price       string
	OldPrice    string
	Category    string
	Fits        string
	Location    string
	Description string
	Pinned      bool
	ImagePaths  []string
}

func (in *ListingInput) validateRequired() error {
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"price", in.Price},
		{"fits", in.Fits},
		{"location", in.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing required field: %s", f.name)
		}
	}
	return nil
}

// ListAll returns every listing, pinned first, newest first within each tier.
func (s *Service) ListAll(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.DB.WithContext(ctx).Order("pinned DESC, created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	for i := range listings {
		listings[i].NormalizeImages()
	}
	return listings, nil
}

// GetByID returns one listing or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	listing.NormalizeImages()
	return &listing, nil
}

// Create inserts a new listing. The first image path becomes the primary
// image and the full ordered list is stored in the images column.
func (s *Service) Create(ctx context.Context, in ListingInput) (*models.Listing, error) {
	if err := in.validateRequired(); err != nil {
		return nil, err
	}
	if len(in.ImagePaths) == 0 {
		return nil, ErrNoImages
	}

	listing := &models.Listing{
		Title:       in.Title,
		Condition:   in.Condition,
		Price:       in.Price,
		OldPrice:    in.OldPrice,
		Category:    in.Category,
		Fits:        in.Fits,
		Location:    in.Location,
		Description: in.Description,
		Pinned:      in.Pinned,
	}
	listing.SetImageList(in.ImagePaths)

	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// Update replaces the editable fields of a listing. Image fields change only
// when new paths are supplied. Returns the number of rows affected; zero
// means the id does not exist.
func (s *Service) Update(ctx context.Context, id uint, in ListingInput) (int64, error) {
	if err := in.validateRequired(); err != nil {
		return 0, err
	}

	updates := map[string]interface{}{
		"title":       in.Title,
		"condition":   in.Condition,
		"price":       in.Price,
		"old_price":   in.OldPrice,
		"category":    in.Category,
		"fits":        in.Fits,
		"location":    in.Location,
		"description": in.Description,
		"pinned":      in.Pinned,
	}
	if len(in.ImagePaths) > 0 {
		var img models.Listing
		img.SetImageList(in.ImagePaths)
		updates["image"] = img.Image
		updates["images"] = img.Images
	}

	tx := s.DB.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return 0, fmt.Errorf("update listing: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

// TogglePin flips the pinned flag and returns the new value, or ErrNotFound.
// The read-flip-write is not serialized against concurrent toggles; last
// write wins.
func (s *Service) TogglePin(ctx context.Context, id uint) (bool, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	pinned := !listing.Pinned
	if err := s.DB.WithContext(ctx).Model(&listing).Update("pinned", pinned).Error; err != nil {
		return false, fmt.Errorf("toggle pin: %w", err)
	}
	return pinned, nil
}

// Delete removes the row by id and returns the number of rows removed.
func (s *Service) Delete(ctx context.Context, id uint) (int64, error) {
	tx := s.DB.WithContext(ctx).Delete(&models.Listing{}, id)
	if tx.Error != nil {
		return 0, fmt.Errorf("delete listing: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}
