package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/Tanimou/user-management-system-sub001/internal/auth/domain UserRepository

import "context"

// UserRepository is the account lookup collaborator. The token
// lifecycle core only reads accounts; mutation methods exist for the
// admin surface.
type UserRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*User, error)
	FindActiveByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUserRoles(ctx context.Context, id string, roles []string) error
	SetUserActive(ctx context.Context, id string, active bool) error
}
