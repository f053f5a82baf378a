package entity

import (
	"time"
)

// Outfit is a saved combination of garments. GarmentIDs is referential,
// not owning: a referenced garment may be deleted independently, leaving
// a dangling id behind.
type Outfit struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`

	Name       string   `json:"name" firestore:"name"`
	GarmentIDs []string `json:"garment_ids" firestore:"garmentIds"`

	ImageURL    string   `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" firestore:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt,serverTimestamp"`
}
