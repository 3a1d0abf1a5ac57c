package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"delish/models"
)

// UserRepository defines persistence operations over the user collection.
// Methods that condition on document state (heart membership, token
// validity) are single atomic updates, so concurrent callers cannot
// interleave between the check and the write.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error

	// FindByResetToken returns the user holding an unexpired token.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)

	// ConsumeResetToken atomically re-validates the token and expiry,
	// sets the new password hash and clears both reset fields. Returns
	// ErrNoDocuments when the token is unknown or expired.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.User, error)

	// PullHeart removes the store from the user's hearts if present.
	// The membership check is part of the update filter; pulled reports
	// whether anything matched.
	PullHeart(ctx context.Context, userID, storeID primitive.ObjectID) (user *models.User, pulled bool, err error)

	// AddHeart adds the store to the user's hearts as a set insert.
	AddHeart(ctx context.Context, userID, storeID primitive.ObjectID) (*models.User, error)
}
