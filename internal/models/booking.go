package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusRescheduled BookingStatus = "rescheduled"
	BookingStatusCompleted   BookingStatus = "completed"
	BookingStatusCancelled   BookingStatus = "cancelled"
)

// ActiveStatuses are the statuses that hold a provider timeslot. At most one
// booking per provider may be active at a given scheduled instant.
var ActiveStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusRescheduled,
}

// bookingTransitions encodes the lifecycle as data. Note the asymmetry:
// customers may cancel from pending/confirmed but not from rescheduled; only
// providers move a booking past confirmed.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:     {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRescheduled},
	BookingStatusConfirmed:   {BookingStatusRescheduled, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusRescheduled: {BookingStatusRescheduled, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:   {},
	BookingStatusCancelled:   {},
}

func CanTransition(from, to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from the status.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`

	Status       BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ScheduledFor time.Time     `gorm:"not null;index" json:"scheduled_for"`

	ServiceAddress string `gorm:"type:text;not null" json:"service_address"`

	// Snapshot of the provider's base price at creation time. Never
	// recomputed, even if the provider later changes their price.
	TotalPrice float64 `gorm:"type:numeric(10,2)" json:"total_price"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *User            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Provider *ProviderProfile `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
