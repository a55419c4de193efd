package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProviderProfile is the service-offering side of a user. A row exists only
// for users with the provider role; search visibility and bookability are
// gated on IsVerified.
type ProviderProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	CategoryID *uint   `gorm:"index" json:"category_id,omitempty"`
	Bio        string  `gorm:"type:text" json:"bio"`
	BasePrice  float64 `gorm:"type:numeric(10,2);default:0" json:"base_price"`

	IsVerified bool `gorm:"default:false;index" json:"is_verified"`

	// Recomputed by the review service; never written anywhere else.
	AvgRating float64 `gorm:"default:0" json:"avg_rating"`

	// Both set or both nil. Nil until the provider completes their profile.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Free-form showcase data (image URLs, links), same shape the frontend
	// sends. Kept as JSON so providers can evolve it without migrations.
	Portfolio datatypes.JSON `json:"portfolio,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (p *ProviderProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// HasLocation reports whether the profile has a usable geographic point.
func (p *ProviderProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
