package app

import (
	"atlas-backend/internal/auth"
	"atlas-backend/internal/config"
	"atlas-backend/internal/database"
	"atlas-backend/internal/health"
	"atlas-backend/internal/listings"
	"atlas-backend/internal/middleware"
	"atlas-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app: middleware, store, migrations, routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, nil, err
	}

	uploadService := &uploads.Service{Dir: cfg.UploadsDir}
	if err := uploadService.EnsureDir(); err != nil {
		return nil, nil, nil, err
	}

	listingHandlers := &listings.Handlers{
		Service: &listings.Service{DB: db},
		Uploads: uploadService,
	}
	app.Get("/api/listings", listingHandlers.List)
	app.Get("/api/listings/:id", listingHandlers.GetOne)
	app.Post("/api/listings", listingHandlers.Create)
	app.Put("/api/listings/:id", listingHandlers.Update)
	app.Patch("/api/listings/:id/toggle-pin", listingHandlers.TogglePin)
	app.Delete("/api/listings/:id", listingHandlers.Delete)

	authHandlers := &auth.Handlers{Service: &auth.Service{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Token:        cfg.AdminToken,
	}}
	app.Post("/api/login", authHandlers.Login)

	app.Static(uploads.PublicPath, cfg.UploadsDir)

	healthHandlers := &health.Handlers{Rdb: rdb, DB: &gormDBPinger{db: db}}
	app.Get("/health/json", healthHandlers.JSON)

	return app, db, rdb, nil
}
