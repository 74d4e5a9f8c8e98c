package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User represents a registered user. ExternalKey is the opaque identifier
// assigned by the hosted identity provider; profile fields are stored as
// received, never validated here.
// swagger:model User
type User struct {
	ID          string    `json:"id"`
	ExternalKey string    `json:"external_key"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID and timestamps are
// assigned on create.
func NewUser(externalKey, firstName, lastName, email, photoURL string) *User {
	return &User{
		ExternalKey: externalKey,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhotoURL:    photoURL,
	}
}

// UserPatch holds a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	PhotoURL  *string
}

// TokenIssuer issues tokens (e.g. JWT) for a user identified by the external
// identity key. Used by development tooling and tests.
type TokenIssuer interface {
	Issue(externalKey string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token minted by the identity provider and returns
// the external identity key it carries.
type TokenVerifier interface {
	Verify(token string) (externalKey string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByExternalKey(ctx context.Context, externalKey string) (*User, error)
	Update(ctx context.Context, externalKey string, patch *UserPatch) (*User, error)
	Delete(ctx context.Context, id string) error
}

// UserService defines the business logic for the user lifecycle, including
// the deletion cascade across events and orders.
type UserService interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByExternalKey(ctx context.Context, externalKey string) (*User, error)
	Update(ctx context.Context, externalKey string, patch *UserPatch) (*User, error)
	// Delete removes the user identified by externalKey after detaching the
	// organizer references on their events and the buyer references on their
	// orders. It returns a snapshot of the deleted user.
	Delete(ctx context.Context, externalKey string) (*User, error)
}
