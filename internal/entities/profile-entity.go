package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"worktrack-portal/pkg/constants"
)

type Profile struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Email     string      `json:"email" db:"email"`
	FullName  null.String `json:"full_name" db:"full_name"`
	Role      string      `json:"role" db:"role"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

func (p *Profile) IsStaffTier() bool {
	return constants.IsStaffTier(p.Role)
}

func (p *Profile) IsClient() bool {
	return p.Role == constants.RoleClient
}

// DisplayName - имя для уведомлений: full_name, если заполнено, иначе email.
func (p *Profile) DisplayName() string {
	if p.FullName.Valid && p.FullName.String != "" {
		return p.FullName.String
	}
	return p.Email
}
