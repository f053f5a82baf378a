package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/pkg/errors"
)

const usersCollection = "users"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	// The profile document id is the auth UID, assigned on sign-up.
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get user profile", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	merged := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		merged[key] = value
	}
	merged["updatedAt"] = firestore.ServerTimestamp

	_, err := r.client.Collection(usersCollection).Doc(id).Set(ctx, merged, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user profile", err)
	}
	return nil
}
