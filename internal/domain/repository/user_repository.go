package repository

import (
	"context"

	"digitalwardrobe/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID returns (nil, nil) when no profile document exists for id.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}
