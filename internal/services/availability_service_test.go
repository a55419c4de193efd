package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAvailability_CreateAndOverlap(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewAvailabilityService(gdb)
	provider, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	// Monday 09:00-12:00.
	if _, err := svc.Create(ctx, provider, SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}); err != nil {
		t.Fatalf("create base slot: %v", err)
	}

	// Monday 11:00-13:00 overlaps.
	_, err := svc.Create(ctx, provider, SlotInput{DayOfWeek: 1, StartTime: "11:00", EndTime: "13:00"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("overlapping slot: got %v, want ErrConflict", err)
	}

	// Monday 12:00-14:00 touches the boundary, no overlap.
	if _, err := svc.Create(ctx, provider, SlotInput{DayOfWeek: 1, StartTime: "12:00", EndTime: "14:00"}); err != nil {
		t.Fatalf("touching slot should succeed: %v", err)
	}

	// Same window on Tuesday is independent.
	if _, err := svc.Create(ctx, provider, SlotInput{DayOfWeek: 2, StartTime: "11:00", EndTime: "13:00"}); err != nil {
		t.Fatalf("same window different day should succeed: %v", err)
	}
}

func TestAvailability_RequiresProviderProfile(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewAvailabilityService(gdb)
	customer := seedCustomer(t, gdb)
	ctx := context.Background()

	in := SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}
	if _, err := svc.Create(ctx, customer, in); !errors.Is(err, ErrForbidden) {
		t.Errorf("create as customer: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Update(ctx, customer, uuid.New(), in); !errors.Is(err, ErrForbidden) {
		t.Errorf("update as customer: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, customer, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Errorf("delete as customer: got %v, want ErrForbidden", err)
	}
}

func TestAvailability_CreateValidation(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewAvailabilityService(gdb)
	provider, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SlotInput
	}{
		{"end equals start", SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
		{"end before start", SlotInput{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}},
		{"day below range", SlotInput{DayOfWeek: -1, StartTime: "09:00", EndTime: "12:00"}},
		{"day above range", SlotInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}},
		{"bad start format", SlotInput{DayOfWeek: 1, StartTime: "9am", EndTime: "12:00"}},
		{"bad end format", SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, provider, c.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", c.name, err)
		}
	}
}

func TestAvailability_UpdateExcludesSelf(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewAvailabilityService(gdb)
	provider, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	slot, err := svc.Create(ctx, provider, SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Widening the same slot must not conflict with itself.
	updated, err := svc.Update(ctx, provider, slot.ID, SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"})
	if err != nil {
		t.Fatalf("update widening own slot: %v", err)
	}
	if updated.EndTime != "13:00" {
		t.Errorf("end_time = %s, want 13:00", updated.EndTime)
	}

	// But it still conflicts with another slot.
	if _, err := svc.Create(ctx, provider, SlotInput{DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"}); err != nil {
		t.Fatalf("create second slot: %v", err)
	}
	_, err = svc.Update(ctx, provider, slot.ID, SlotInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "15:00"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("update into second slot: got %v, want ErrConflict", err)
	}
}

func TestAvailability_OwnershipScoping(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewAvailabilityService(gdb)
	owner, _ := seedProvider(t, gdb, true)
	other, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	slot, err := svc.Create(ctx, owner, SlotInput{DayOfWeek: 3, StartTime: "08:00", EndTime: "10:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, other, slot.ID, SlotInput{DayOfWeek: 3, StartTime: "08:00", EndTime: "11:00"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, other, slot.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, owner, slot.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	if err := svc.Delete(ctx, owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing: got %v, want ErrNotFound", err)
	}
}

func TestAvailability_ListOrdering(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewAvailabilityService(gdb)
	provider, _ := seedProvider(t, gdb, true)
	ctx := context.Background()

	for _, in := range []SlotInput{
		{DayOfWeek: 5, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "15:00"},
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00"},
	} {
		if _, err := svc.Create(ctx, provider, in); err != nil {
			t.Fatalf("create %v: %v", in, err)
		}
	}

	slots, err := svc.List(ctx, provider.ProviderID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("len = %d, want 3", len(slots))
	}
	if slots[0].DayOfWeek != 1 || slots[0].StartTime != "08:00" {
		t.Errorf("first slot = day %d %s, want day 1 08:00", slots[0].DayOfWeek, slots[0].StartTime)
	}
	if slots[2].DayOfWeek != 5 {
		t.Errorf("last slot day = %d, want 5", slots[2].DayOfWeek)
	}
}
