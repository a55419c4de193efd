package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusRescheduled, true},
		{BookingStatusPending, BookingStatusCompleted, false},

		{BookingStatusConfirmed, BookingStatusRescheduled, true},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},

		{BookingStatusRescheduled, BookingStatusRescheduled, true},
		{BookingStatusRescheduled, BookingStatusCompleted, true},
		{BookingStatusRescheduled, BookingStatusCancelled, true},
		{BookingStatusRescheduled, BookingStatusConfirmed, false},

		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		BookingStatusPending:     false,
		BookingStatusConfirmed:   false,
		BookingStatusRescheduled: false,
		BookingStatusCompleted:   true,
		BookingStatusCancelled:   true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}
