package database

import (
	"fmt"
	"time"

	"atlas-backend/internal/models"

	"gorm.io/gorm"
)

// schemaMigration marks an applied migration version.
type schemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// baseListing is the listings schema as first shipped, before the additive
// columns. Kept separate so migration 1 stays frozen while models.Listing
// moves on.
type baseListing struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Condition   string    `gorm:"column:condition;not null"`
	Price       string    `gorm:"column:price;not null"`
	Fits        string    `gorm:"column:fits;not null"`
	Location    string    `gorm:"column:location;not null"`
	Image       string    `gorm:"column:image;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (baseListing) TableName() string {
	return "listings"
}

type migration struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

// Each added column is nullable/zero-default so rows written under earlier
// versions remain valid. The HasTable/HasColumn guards let a database created
// before version tracking existed adopt the marker table cleanly.
var migrations = []migration{
	{1, "create listings table", func(tx *gorm.DB) error {
		if tx.Migrator().HasTable("listings") {
			return nil
		}
		return tx.Migrator().CreateTable(&baseListing{})
	}},
	{2, "add images column", addColumn("Images")},
	{3, "add pinned column", addColumn("Pinned")},
	{4, "add old_price column", addColumn("OldPrice")},
	{5, "add category column", addColumn("Category")},
}

func addColumn(field string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		if tx.Migrator().HasColumn(&models.Listing{}, field) {
			return nil
		}
		return tx.Migrator().AddColumn(&models.Listing{}, field)
	}
}

// Migrate applies all pending migrations in order, once each.
func Migrate(db *gorm.DB) error {
	return migrateTo(db, migrations[len(migrations)-1].Version)
}

func migrateTo(db *gorm.DB, maxVersion int) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	for _, m := range migrations {
		if m.Version > maxVersion {
			break
		}
		var applied int64
		if err := db.Model(&schemaMigration{}).Where("version = ?", m.Version).Count(&applied).Error; err != nil {
			return err
		}
		if applied > 0 {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}
