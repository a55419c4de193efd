package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilitySlot is a recurring weekly working window. Times are stored as
// "HH:MM" strings; DayOfWeek uses the Sunday=0 convention (matches Go's
// time.Weekday numbering).
type AvailabilitySlot struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`

	DayOfWeek int    `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Provider *ProviderProfile `gorm:"foreignKey:ProviderID" json:"-"`
}

func (s *AvailabilitySlot) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// MinuteOfDay parses an "HH:MM" clock string into minutes since midnight.
// Hours and minutes must be zero-padded: slot listings sort on the raw
// string, so an unpadded "9:30" would order after "12:00".
func MinuteOfDay(hhmm string) (int, error) {
	if len(hhmm) != 5 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", hhmm)
	}
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%2d:%2d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", hhmm)
	}
	return h*60 + m, nil
}

// Overlaps reports whether two half-open minute intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
