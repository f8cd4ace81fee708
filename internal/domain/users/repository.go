package users

import "context"

type Repository interface {
	// Create falha com sentinel.ErrConflict se o username já existir.
	Create(ctx context.Context, u User) error

	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
