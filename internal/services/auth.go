package services

import (
	"github.com/google/uuid"

	"lokaserve/internal/models"
)

// Auth is the caller identity resolved once per request by the middleware
// chain and passed into every service operation. ProviderID is set only for
// provider-role callers with a provider profile.
type Auth struct {
	UserID     uuid.UUID
	Role       models.Role
	ProviderID uuid.UUID
}

func (a Auth) IsProvider() bool {
	return a.Role == models.RoleProvider && a.ProviderID != uuid.Nil
}

func (a Auth) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
