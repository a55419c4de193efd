package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lokaserve/internal/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates the schema. Shared with tests, which run it against an
// in-memory sqlite database, so everything here must be portable.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.ProviderProfile{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Review{},
	); err != nil {
		return err
	}

	// Partial unique index backing the one-active-booking-per-instant
	// invariant. GORM's index tags cannot express the WHERE clause, so it
	// goes in raw; the syntax works on both Postgres and sqlite.
	return gdb.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
		 ON bookings (provider_id, scheduled_for)
		 WHERE status IN ('pending', 'confirmed', 'rescheduled')`,
	).Error
}
