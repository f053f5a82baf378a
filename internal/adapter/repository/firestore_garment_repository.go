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

const garmentsCollection = "garments"

type firestoreGarmentRepository struct {
	client *firestore.Client
}

func NewFirestoreGarmentRepository(client *firestore.Client) repository.GarmentRepository {
	return &firestoreGarmentRepository{
		client: client,
	}
}

func (r *firestoreGarmentRepository) Save(ctx context.Context, garment *entity.Garment) (string, error) {
	// Empty ID means a new document; the backend assigns the id.
	doc := r.client.Collection(garmentsCollection).Doc(garment.ID)
	if garment.ID == "" {
		doc = r.client.Collection(garmentsCollection).NewDoc()
		garment.ID = doc.ID
	}

	if _, err := doc.Set(ctx, garment); err != nil {
		return "", errors.Internal("Failed to save garment", err)
	}

	return garment.ID, nil
}

func (r *firestoreGarmentRepository) GetByID(ctx context.Context, id string) (*entity.Garment, error) {
	doc, err := r.client.Collection(garmentsCollection).Doc(id).Get(ctx)
	if err != nil {
		// Absence is a distinct outcome, not a failure.
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get garment", err)
	}

	var garment entity.Garment
	if err := doc.DataTo(&garment); err != nil {
		return nil, errors.Internal("Failed to parse garment data", err)
	}

	return &garment, nil
}

func (r *firestoreGarmentRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Garment, error) {
	iter := r.ownerQuery(userID).Documents(ctx)
	defer iter.Stop()

	var garments []*entity.Garment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list garments", err)
		}

		var garment entity.Garment
		if err := doc.DataTo(&garment); err != nil {
			return nil, errors.Internal("Failed to parse garment data", err)
		}
		garments = append(garments, &garment)
	}

	return garments, nil
}

func (r *firestoreGarmentRepository) WatchByOwner(ctx context.Context, userID string) <-chan repository.GarmentList {
	out := make(chan repository.GarmentList, 1)

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
				// Deliver the failure as a value; the subscription ends.
				select {
				case out <- repository.GarmentList{Err: errors.Internal("Garment subscription failed", err)}:
				case <-ctx.Done():
				}
				return
			}

			garments := make([]*entity.Garment, 0, snapshot.Size)
			docs := snapshot.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Warn("Skipping undecodable garment snapshot: %v", err)
					continue
				}
				var garment entity.Garment
				if err := doc.DataTo(&garment); err != nil {
					logger.Warn("Skipping undecodable garment %s: %v", doc.Ref.ID, err)
					continue
				}
				garments = append(garments, &garment)
			}

			select {
			case out <- repository.GarmentList{Garments: garments}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (r *firestoreGarmentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	merged := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		merged[key] = value
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	_, err := r.client.Collection(garmentsCollection).Doc(id).Set(ctx, merged, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update garment", err)
	}
	return nil
}

func (r *firestoreGarmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(garmentsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete garment", err)
	}
	return nil
}

func (r *firestoreGarmentRepository) ownerQuery(userID string) firestore.Query {
	return r.client.Collection(garmentsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
}
