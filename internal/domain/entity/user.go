package entity

import (
	"time"
)

// User is the profile document mirrored from the auth account.
// Authentication itself lives in Firebase Auth; this only carries the
// additional profile fields.
type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`

	FirstName string `json:"first_name,omitempty" firestore:"firstName,omitempty"`
	LastName  string `json:"last_name,omitempty" firestore:"lastName,omitempty"`
	Bio       string `json:"bio,omitempty" firestore:"bio,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt,serverTimestamp"`
}
