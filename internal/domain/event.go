package domain

import (
	"context"
	"time"
)

// UserSummary is the read-side projection of a user embedded in query
// results (the organizer of an event, the buyer of an order).
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CategorySummary is the read-side projection of a category embedded in
// query results.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event represents a published event. Organizer and Category carry the
// embedded summaries produced by the read-side joins; either may be nil when
// the reference has been detached.
// swagger:model Event
type Event struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	ImageURL      string           `json:"image_url"`
	StartDateTime time.Time        `json:"start_date_time"`
	EndDateTime   time.Time        `json:"end_date_time"`
	Price         string           `json:"price"`
	IsFree        bool             `json:"is_free"`
	URL           string           `json:"url"`
	Organizer     *UserSummary     `json:"organizer"`
	Category      *CategorySummary `json:"category"`
	CreatedAt     time.Time        `json:"created_at"`
}

// EventDraft holds the caller-supplied fields for creating an event.
// Price is ignored when IsFree is set.
type EventDraft struct {
	Title         string
	Description   string
	Location      string
	ImageURL      string
	StartDateTime time.Time
	EndDateTime   time.Time
	Price         string
	IsFree        bool
	URL           string
	CategoryID    string
	OrganizerID   string
}

// EventPatch holds a partial update for an event. Nil fields are left
// untouched.
type EventPatch struct {
	ID            string
	Title         *string
	Description   *string
	Location      *string
	ImageURL      *string
	StartDateTime *time.Time
	EndDateTime   *time.Time
	Price         *string
	IsFree        *bool
	URL           *string
	CategoryID    *string
}

// EventFilter is the conjunctive filter applied by the event list query.
// Zero-valued fields contribute no constraint.
type EventFilter struct {
	TitleQuery     string
	CategoryID     string
	OrganizerID    string
	ExcludeEventID string
}

// EventQuery is the caller-facing search input for listing events.
// CategoryName is resolved to a category id by the service.
type EventQuery struct {
	Text         string
	CategoryName string
	Page         int
	PageSize     int
}

// EventPage is one page of enriched events plus the total page count for the
// matching set.
type EventPage struct {
	Items      []*Event `json:"items"`
	TotalPages int      `json:"total_pages"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, draft *EventDraft) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, patch *EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
	// List returns one page of enriched events matching filter plus the total
	// count of matching rows.
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	// ClearOrganizer detaches the organizer reference from every event owned
	// by the given user.
	ClearOrganizer(ctx context.Context, organizerID string) error
}

// EventService defines the business logic for event queries and mutations.
// The path argument on mutations names the cached page to invalidate after a
// successful write.
type EventService interface {
	Create(ctx context.Context, organizerID string, draft *EventDraft, path string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, userID string, patch *EventPatch, path string) (*Event, error)
	Delete(ctx context.Context, userID, eventID, path string) error
	List(ctx context.Context, q EventQuery) (*EventPage, error)
	ListRelated(ctx context.Context, categoryID, eventID string, params PaginationParams) (*EventPage, error)
	ListByOrganizer(ctx context.Context, organizerID string, params PaginationParams) (*EventPage, error)
}
