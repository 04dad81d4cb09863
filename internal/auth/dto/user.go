package dto

import (
	"time"

	"github.com/Tanimou/user-management-system-sub001/internal/auth/domain"
)

// UserOutput is the wire shape of an account. The password hash never
// leaves the service layer.
type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		Roles:     u.Roles,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UpdateRolesInput struct {
	Roles []string `json:"roles"`
}

type UpdateActiveInput struct {
	Active bool `json:"active"`
}
