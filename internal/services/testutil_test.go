package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lokaserve/internal/db"
	"lokaserve/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedCustomer(t *testing.T, gdb *gorm.DB) Auth {
	t.Helper()
	u := &models.User{
		Name:     "Test Customer",
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return Auth{UserID: u.ID, Role: models.RoleCustomer}
}

func seedProvider(t *testing.T, gdb *gorm.DB, verified bool) (Auth, *models.ProviderProfile) {
	t.Helper()
	u := &models.User{
		Name:     "Test Provider",
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     models.RoleProvider,
		IsActive: true,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seed provider user: %v", err)
	}
	p := &models.ProviderProfile{
		UserID:     u.ID,
		BasePrice:  150,
		IsVerified: verified,
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("seed provider profile: %v", err)
	}
	return Auth{UserID: u.ID, Role: models.RoleProvider, ProviderID: p.ID}, p
}

// seedFullWeekAvailability gives the provider an all-day slot for every
// weekday so booking tests can pick arbitrary future instants.
func seedFullWeekAvailability(t *testing.T, gdb *gorm.DB, providerID uuid.UUID) {
	t.Helper()
	for day := 0; day <= 6; day++ {
		slot := &models.AvailabilitySlot{
			ProviderID: providerID,
			DayOfWeek:  day,
			StartTime:  "00:00",
			EndTime:    "23:59",
		}
		if err := gdb.Create(slot).Error; err != nil {
			t.Fatalf("seed slot day %d: %v", day, err)
		}
	}
}

func seedSlot(t *testing.T, gdb *gorm.DB, providerID uuid.UUID, day int, start, end string) *models.AvailabilitySlot {
	t.Helper()
	slot := &models.AvailabilitySlot{
		ProviderID: providerID,
		DayOfWeek:  day,
		StartTime:  start,
		EndTime:    end,
	}
	if err := gdb.Create(slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return slot
}

// futureInstant returns a whole-second UTC instant at least two days ahead.
func futureInstant() time.Time {
	return time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
}

func seedBooking(t *testing.T, gdb *gorm.DB, customer Auth, provider *models.ProviderProfile, status models.BookingStatus, at time.Time) *models.Booking {
	t.Helper()
	b := &models.Booking{
		CustomerID:     customer.UserID,
		ProviderID:     provider.ID,
		Status:         status,
		ScheduledFor:   at,
		ServiceAddress: "Jl. Contoh No. 1",
		TotalPrice:     provider.BasePrice,
	}
	if err := gdb.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}
