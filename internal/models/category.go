package models

import "time"

type Category struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	IconURL string `gorm:"type:text" json:"icon_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
