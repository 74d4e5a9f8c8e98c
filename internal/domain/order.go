package domain

import (
	"context"
	"time"
)

// Order represents a completed checkout for one event. TotalAmount is a
// price snapshot taken at purchase time; free tickets snapshot a zero
// amount. Buyer is nil once the buyer reference has been detached.
// swagger:model Order
type Order struct {
	ID          string       `json:"id"`
	Reference   string       `json:"reference"`
	EventID     string       `json:"event_id"`
	EventTitle  string       `json:"event_title"`
	Buyer       *UserSummary `json:"buyer"`
	TotalAmount string       `json:"total_amount"`
	CreatedAt   time.Time    `json:"created_at"`
}

// OrderRepository defines the interface for order storage.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// ListByEvent returns the orders for an event, newest first, optionally
	// filtered by a case-insensitive buyer-name search.
	ListByEvent(ctx context.Context, eventID, search string) ([]*Order, error)
	// ClearBuyer strips the buyer reference from every order placed by the
	// given user.
	ClearBuyer(ctx context.Context, buyerID string) error
}

// OrderService is the surface the checkout flow needs from the order
// subsystem. Payment sessions and webhooks live with the hosted payment
// provider.
type OrderService interface {
	Create(ctx context.Context, eventID, buyerID, amount string, isFree bool) (*Order, error)
	ListByEvent(ctx context.Context, eventID, search string) ([]*Order, error)
}
