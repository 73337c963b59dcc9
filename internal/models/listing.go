package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Listing is one catalog item: a truck bed or related part.
// Images holds the ordered image paths as a JSON array column; its first
// element always equals Image, the primary image.
type Listing struct {
	ID          uint           `gorm:"column:id;primaryKey" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Condition   string         `gorm:"column:condition;not null" json:"condition"`
	Price       string         `gorm:"column:price;not null" json:"price"`
	OldPrice    string         `gorm:"column:old_price" json:"old_price,omitempty"`
	Category    string         `gorm:"column:category" json:"category,omitempty"`
	Fits        string         `gorm:"column:fits;not null" json:"fits"`
	Location    string         `gorm:"column:location;not null" json:"location"`
	Image       string         `gorm:"column:image;not null" json:"image"`
	Images      datatypes.JSON `gorm:"column:images" json:"images"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	Pinned      bool           `gorm:"column:pinned;default:false" json:"pinned"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// ImageList returns the ordered image paths. Rows written before the images
// column existed have a null column; the primary image stands in for them.
func (l *Listing) ImageList() []string {
	if len(l.Images) > 0 {
		var paths []string
		if err := json.Unmarshal(l.Images, &paths); err == nil && len(paths) > 0 {
			return paths
		}
	}
	if l.Image == "" {
		return nil
	}
	return []string{l.Image}
}

// SetImageList sets Image and Images from an ordered path list; the first
// path becomes the primary image.
func (l *Listing) SetImageList(paths []string) {
	if len(paths) == 0 {
		return
	}
	l.Image = paths[0]
	b, _ := json.Marshal(paths)
	l.Images = datatypes.JSON(b)
}

// NormalizeImages backfills the Images column in API responses so callers
// always see a non-null array whose first element is the primary image.
func (l *Listing) NormalizeImages() {
	if len(l.Images) == 0 && l.Image != "" {
		b, _ := json.Marshal([]string{l.Image})
		l.Images = datatypes.JSON(b)
	}
}
