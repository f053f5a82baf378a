package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/pkg/errors"
	"digitalwardrobe/pkg/logger"
)

const outfitsCollection = "outfits"

type firestoreOutfitRepository struct {
	client *firestore.Client
}

func NewFirestoreOutfitRepository(client *firestore.Client) repository.OutfitRepository {
	return &firestoreOutfitRepository{
		client: client,
	}
}

func (r *firestoreOutfitRepository) Save(ctx context.Context, outfit *entity.Outfit) (string, error) {
	doc := r.client.Collection(outfitsCollection).Doc(outfit.ID)
	if outfit.ID == "" {
		doc = r.client.Collection(outfitsCollection).NewDoc()
		outfit.ID = doc.ID
	}

	if _, err := doc.Set(ctx, outfit); err != nil {
		return "", errors.Internal("Failed to save outfit", err)
	}

	return outfit.ID, nil
}

func (r *firestoreOutfitRepository) GetByID(ctx context.Context, id string) (*entity.Outfit, error) {
	doc, err := r.client.Collection(outfitsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get outfit", err)
	}

	var outfit entity.Outfit
	if err := doc.DataTo(&outfit); err != nil {
		return nil, errors.Internal("Failed to parse outfit data", err)
	}

	return &outfit, nil
}

func (r *firestoreOutfitRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Outfit, error) {
	iter := r.ownerQuery(userID).Documents(ctx)
	defer iter.Stop()

	var outfits []*entity.Outfit
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list outfits", err)
		}

		var outfit entity.Outfit
		if err := doc.DataTo(&outfit); err != nil {
			return nil, errors.Internal("Failed to parse outfit data", err)
		}
		outfits = append(outfits, &outfit)
	}

	return outfits, nil
}

func (r *firestoreOutfitRepository) WatchByOwner(ctx context.Context, userID string) <-chan repository.OutfitList {
	out := make(chan repository.OutfitList, 1)

	go func() {
		defer close(out)

		snapshots := r.ownerQuery(userID).Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				select {
				case out <- repository.OutfitList{Err: errors.Internal("Outfit subscription failed", err)}:
				case <-ctx.Done():
				}
				return
			}

			outfits := make([]*entity.Outfit, 0, snapshot.Size)
			docs := snapshot.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Warn("Skipping undecodable outfit snapshot: %v", err)
					continue
				}
				var outfit entity.Outfit
				if err := doc.DataTo(&outfit); err != nil {
					logger.Warn("Skipping undecodable outfit %s: %v", doc.Ref.ID, err)
					continue
				}
				outfits = append(outfits, &outfit)
			}

			select {
			case out <- repository.OutfitList{Outfits: outfits}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (r *firestoreOutfitRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	merged := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		merged[key] = value
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	_, err := r.client.Collection(outfitsCollection).Doc(id).Set(ctx, merged, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update outfit", err)
	}
	return nil
}

func (r *firestoreOutfitRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(outfitsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete outfit", err)
	}
	return nil
}

func (r *firestoreOutfitRepository) ownerQuery(userID string) firestore.Query {
	return r.client.Collection(outfitsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
}
