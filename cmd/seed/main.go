package main

import (
	"atlas-backend/internal/config"
	"atlas-backend/internal/database"
	"atlas-backend/internal/models"

	"github.com/rs/zerolog/log"
)

type seedListing struct {
	title       string
	condition   string
	price       string
	fits        string
	location    string
	image       string
	description string
}

var seedListings = []seedListing{
	{
		title:       "Steel Flatbed – 8ft",
		condition:   "New",
		price:       "$2,450",
		fits:        "Ford F-250/F-350 (2017–2025)",
		location:    "Houston, TX",
		image:       "https://images.unsplash.com/photo-1588620864359-2228c2ddde6d?w=800&auto=format&fit=crop&q=60",
		description: "Heavy-duty steel flatbed with headache rack, stake pockets, and LED lights. Ready for work.",
	},
	{
		title:       "Utility Bed w/ Toolboxes",
		condition:   "Used",
		price:       "$1,800",
		fits:        "Chevy Silverado 2500HD",
		location:    "Dallas, TX",
		image:       "https://images.unsplash.com/photo-1605218456182-ad57ab9c18bf?w=800&auto=format&fit=crop&q=60",
		description: "Utility body with locking toolboxes, ladder rack, and spacious cargo area. Great condition.",
	},
	{
		title:       "Aluminum Flatbed – 9ft",
		condition:   "New",
		price:       "$3,200",
		fits:        "Ram 3500 (2019–2025)",
		location:    "Phoenix, AZ",
		image:       "https://images.unsplash.com/photo-1533473359331-0135ef1b58bf?w=800&auto=format&fit=crop&q=60",
		description: "Lightweight yet durable aluminum flatbed. Rust-resistant and fuel-efficient design.",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	var count int64
	if err := db.Model(&models.Listing{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("count listings")
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("listings already exist; skipping seed")
		return
	}

	for _, s := range seedListings {
		listing := models.Listing{
			Title:       s.title,
			Condition:   s.condition,
			Price:       s.price,
			Fits:        s.fits,
			Location:    s.location,
			Description: s.description,
		}
		listing.SetImageList([]string{s.image})
		if err := db.Create(&listing).Error; err != nil {
			log.Fatal().Err(err).Str("title", s.title).Msg("seed listing")
		}
	}
	log.Info().Int("listings", len(seedListings)).Msg("database seeded")
}
