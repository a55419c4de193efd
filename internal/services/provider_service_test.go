package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lokaserve/internal/geo"
	"lokaserve/internal/models"
)

func TestProvider_UpdateWritesThroughToIndex(t *testing.T) {
	gdb := openTestDB(t)
	idx := geo.NewMemoryIndex()
	svc := NewProviderService(gdb, idx)
	search := NewSearchService(gdb, idx)
	provider, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	lat, lng := -6.2090, 106.8458
	bio := "tukang ledeng berpengalaman"
	price := 200.0
	updated, err := svc.Update(ctx, provider, UpdateProfileInput{
		Bio:       &bio,
		BasePrice: &price,
		Latitude:  &lat,
		Longitude: &lng,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != bio || updated.BasePrice != price {
		t.Errorf("profile not updated: %+v", updated)
	}

	// The index saw the new location without a reseed.
	got, err := search.Search(ctx, SearchParams{Lat: -6.2088, Lng: 106.8456, RadiusKm: 5})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != provider.ProviderID {
		t.Fatalf("expected updated provider in search, got %d results", len(got))
	}
}

func TestProvider_UpdateValidation(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewProviderService(gdb, geo.NewMemoryIndex())
	provider, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	neg := -10.0
	if _, err := svc.Update(ctx, provider, UpdateProfileInput{BasePrice: &neg}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative price: got %v, want ErrInvalidInput", err)
	}

	lat := -6.2
	if _, err := svc.Update(ctx, provider, UpdateProfileInput{Latitude: &lat}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("lat without lng: got %v, want ErrInvalidInput", err)
	}

	badLat, lng := 95.0, 106.8
	if _, err := svc.Update(ctx, provider, UpdateProfileInput{Latitude: &badLat, Longitude: &lng}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("out-of-range lat: got %v, want ErrInvalidInput", err)
	}

	missing := uint(9999)
	if _, err := svc.Update(ctx, provider, UpdateProfileInput{CategoryID: &missing}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing category: got %v, want ErrNotFound", err)
	}

	customer := seedCustomer(t, gdb)
	bio := "not a provider"
	if _, err := svc.Update(ctx, customer, UpdateProfileInput{Bio: &bio}); !errors.Is(err, ErrForbidden) {
		t.Errorf("update as customer: got %v, want ErrForbidden", err)
	}
}

func TestProvider_GetPublic(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewProviderService(gdb, geo.NewMemoryIndex())
	customer := seedCustomer(t, gdb)
	provider, profile := seedProvider(t, gdb, true)
	_, hidden := seedProvider(t, gdb, false)
	ctx := context.Background()

	seedSlot(t, gdb, provider.ProviderID, 1, "09:00", "12:00")
	b := seedBooking(t, gdb, customer, profile, models.BookingStatusCompleted, futureInstant())
	if _, err := NewReviewService(gdb).Create(ctx, customer, CreateReviewInput{BookingID: b.ID, Rating: 4, Comment: "ok"}); err != nil {
		t.Fatalf("review: %v", err)
	}

	pub, err := svc.GetPublic(ctx, profile.ID)
	if err != nil {
		t.Fatalf("get public: %v", err)
	}
	if len(pub.Availability) != 1 || len(pub.Reviews) != 1 {
		t.Errorf("availability=%d reviews=%d, want 1 and 1", len(pub.Availability), len(pub.Reviews))
	}

	// Unverified profiles are not publicly visible.
	if _, err := svc.GetPublic(ctx, hidden.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unverified public profile: got %v, want ErrNotFound", err)
	}
}

func TestProvider_VerifyFlow(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewProviderService(gdb, geo.NewMemoryIndex())
	_, profile := seedProvider(t, gdb, false)
	ctx := context.Background()

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != profile.ID {
		t.Fatalf("pending = %v", pending)
	}

	verified, err := svc.SetVerified(ctx, profile.ID, true)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verified.IsVerified {
		t.Error("profile not verified")
	}

	pending, err = svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("pending after verify: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending len = %d, want 0", len(pending))
	}
}

func TestDashboard_ProviderAndAdmin(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewDashboardService(gdb)
	customer := seedCustomer(t, gdb)
	provider, profile := seedProvider(t, gdb, true)
	ctx := context.Background()

	base := futureInstant()
	seedBooking(t, gdb, customer, profile, models.BookingStatusPending, base)
	seedBooking(t, gdb, customer, profile, models.BookingStatusConfirmed, base.Add(time.Hour))
	done := seedBooking(t, gdb, customer, profile, models.BookingStatusCompleted, base.Add(2*time.Hour))
	if _, err := NewReviewService(gdb).Create(ctx, customer, CreateReviewInput{BookingID: done.ID, Rating: 4}); err != nil {
		t.Fatalf("review: %v", err)
	}

	pd, err := svc.Provider(ctx, provider)
	if err != nil {
		t.Fatalf("provider dashboard: %v", err)
	}
	if pd.StatusCounts[models.BookingStatusPending] != 1 ||
		pd.StatusCounts[models.BookingStatusCompleted] != 1 {
		t.Errorf("status counts = %v", pd.StatusCounts)
	}
	if pd.Earnings != profile.BasePrice {
		t.Errorf("earnings = %f, want %f", pd.Earnings, profile.BasePrice)
	}
	if pd.ReviewCount != 1 || pd.AvgRating != 4.0 {
		t.Errorf("reviews = %d rating = %f", pd.ReviewCount, pd.AvgRating)
	}
	if len(pd.Upcoming) != 1 {
		t.Errorf("upcoming len = %d, want 1 (confirmed only)", len(pd.Upcoming))
	}

	ad, err := svc.Admin(ctx)
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	if ad.TotalUsers != 2 || ad.TotalProviders != 1 || ad.TotalBookings != 3 || ad.TotalReviews != 1 {
		t.Errorf("admin totals = %+v", ad)
	}
	if ad.CompletedEarnings != profile.BasePrice {
		t.Errorf("completed earnings = %f", ad.CompletedEarnings)
	}
}
