package repository

import (
	"context"

	"digitalwardrobe/internal/domain/entity"
)

// GarmentList is one delivery of a live owner query: either a full
// result set or an error value, never both.
type GarmentList struct {
	Garments []*entity.Garment
	Err      error
}

type GarmentRepository interface {
	// Save writes the full garment. An empty ID gets a backend-assigned
	// one; a non-empty ID is an upsert target. Returns the final ID.
	Save(ctx context.Context, garment *entity.Garment) (string, error)
	// GetByID returns (nil, nil) when the document is absent. Absence and
	// transport failure are distinct outcomes.
	GetByID(ctx context.Context, id string) (*entity.Garment, error)
	// ListByOwner is a one-shot read, newest first.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Garment, error)
	// WatchByOwner redelivers the full owner result set on every
	// server-side change. Canceling ctx detaches the listener and closes
	// the channel.
	WatchByOwner(ctx context.Context, userID string) <-chan GarmentList
	// Update merges the named fields into the existing document.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the document. Outfits referencing it keep their
	// stale ids.
	Delete(ctx context.Context, id string) error
}
