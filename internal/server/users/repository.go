package users

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
	UpdatePlan(ctx context.Context, username string, plan Plan) error
}
