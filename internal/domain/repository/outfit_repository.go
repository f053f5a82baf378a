package repository

import (
	"context"

	"digitalwardrobe/internal/domain/entity"
)

type OutfitList struct {
	Outfits []*entity.Outfit
	Err     error
}

type OutfitRepository interface {
	Save(ctx context.Context, outfit *entity.Outfit) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Outfit, error)
	ListByOwner(ctx context.Context, userID string) ([]*entity.Outfit, error)
	WatchByOwner(ctx context.Context, userID string) <-chan OutfitList
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
