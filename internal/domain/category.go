package domain

import "context"

// Category represents an event category. Name uniqueness is assumed by the
// UI but not enforced at the data layer.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository defines the interface for category storage.
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*Category, error)
	// GetByName resolves a human-readable name with a case-insensitive
	// substring match. When several categories match, the first row in
	// natural storage order wins. Returns ErrNotFound when nothing matches.
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

// CategoryService defines the business logic for categories.
type CategoryService interface {
	Create(ctx context.Context, name string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}
