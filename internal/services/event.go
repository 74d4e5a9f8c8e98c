package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evently/internal/domain"
)

// Default page sizes for the event listings.
const (
	defaultEventPageSize   = 6
	defaultRelatedPageSize = 3
)

type eventService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	userRepo       domain.UserRepository
	invalidator    domain.PathInvalidator
	strictCategory bool
	contextTimeout time.Duration
}

// NewEventService creates the event query engine and mutation service.
// strictCategory selects the list-events contract for an unresolvable
// category name: false keeps the legacy pass-all clause, true returns zero
// results.
func NewEventService(eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	userRepo domain.UserRepository,
	invalidator domain.PathInvalidator,
	strictCategory bool,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		invalidator:    invalidator,
		strictCategory: strictCategory,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, organizerID string, draft *domain.EventDraft, path string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, organizerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	draft.OrganizerID = organizerID
	event, err := s.eventRepo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.invalidator.Invalidate(ctx, path)
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, userID string, patch *domain.EventPatch, path string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, patch.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Organizer == nil || event.Organizer.ID != userID {
		return nil, domain.ErrNotFoundOrUnauthorized
	}
	updated, err := s.eventRepo.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.invalidator.Invalidate(ctx, path)
	return updated, nil
}

// Delete removes an event after the same organizer check Update performs.
// Deleting an event that does not exist is a silent no-op: no error, no
// invalidation signal.
func (s *eventService) Delete(ctx context.Context, userID, eventID, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.Organizer == nil || event.Organizer.ID != userID {
		return domain.ErrNotFoundOrUnauthorized
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Row vanished between the check and the delete.
			return nil
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.invalidator.Invalidate(ctx, path)
	return nil
}

func (s *eventService) List(ctx context.Context, q domain.EventQuery) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if q.PageSize <= 0 {
		q.PageSize = defaultEventPageSize
	}
	filter := domain.EventFilter{TitleQuery: q.Text}
	if q.CategoryName != "" {
		category, err := s.categoryRepo.GetByName(ctx, q.CategoryName)
		switch {
		case err == nil:
			filter.CategoryID = category.ID
		case errors.Is(err, domain.ErrNotFound):
			if s.strictCategory {
				return &domain.EventPage{Items: []*domain.Event{}, TotalPages: 0}, nil
			}
			// Legacy contract: an unresolvable name contributes no
			// constraint, so every event passes this clause.
		default:
			return nil, fmt.Errorf("resolve category: %w", err)
		}
	}
	return s.page(ctx, filter, domain.PaginationParams{Page: q.Page, PageSize: q.PageSize})
}

func (s *eventService) ListRelated(ctx context.Context, categoryID, eventID string, params domain.PaginationParams) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if params.PageSize <= 0 {
		params.PageSize = defaultRelatedPageSize
	}
	filter := domain.EventFilter{CategoryID: categoryID, ExcludeEventID: eventID}
	return s.page(ctx, filter, params)
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string, params domain.PaginationParams) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if params.PageSize <= 0 {
		params.PageSize = defaultEventPageSize
	}
	return s.page(ctx, domain.EventFilter{OrganizerID: organizerID}, params)
}

func (s *eventService) page(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) (*domain.EventPage, error) {
	items, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if items == nil {
		items = []*domain.Event{}
	}
	return &domain.EventPage{
		Items:      items,
		TotalPages: domain.TotalPages(total, params.PageSize),
	}, nil
}
