package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"evently/internal/domain"
)

// rootPath is invalidated after a user deletion so the landing listing is
// recomputed.
const rootPath = "/"

type userService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	orderRepo      domain.OrderRepository
	invalidator    domain.PathInvalidator
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewUserService creates the user lifecycle service. emailService may be nil
// to disable the welcome email.
func NewUserService(userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	orderRepo domain.OrderRepository,
	invalidator domain.PathInvalidator,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		orderRepo:      orderRepo,
		invalidator:    invalidator,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// Create stores the identity-provider payload as received. The external key
// and profile fields are issued by the provider and are not validated here.
func (s *userService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(user.ExternalKey) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if s.emailService != nil && user.Email != "" {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, FirstName: user.FirstName}
		// Best effort: a failed welcome email never fails the signup.
		_ = s.emailService.SendWelcomeMessage(ctx, data)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByExternalKey(ctx context.Context, externalKey string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByExternalKey(ctx, externalKey)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by external key: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, externalKey string, patch *domain.UserPatch) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.userRepo.Update(ctx, externalKey, patch)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// Delete runs the deletion cascade: locate the user by external key, detach
// the organizer references on their events and the buyer references on their
// orders concurrently, then delete the user row. Both detach operations run
// to completion even when one fails; a failure in either aborts the cascade
// afterwards with the user row intact. The sequence is not transactional, so
// an aborted cascade can leave references partially detached.
func (s *userService) Delete(ctx context.Context, externalKey string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByExternalKey(ctx, externalKey)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by external key: %w", err)
	}

	// Plain Group, not WithContext: a failed detach must not cancel its
	// sibling mid-query.
	var g errgroup.Group
	g.Go(func() error {
		if err := s.eventRepo.ClearOrganizer(ctx, user.ID); err != nil {
			return fmt.Errorf("detach organizer references: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.orderRepo.ClearBuyer(ctx, user.ID); err != nil {
			return fmt.Errorf("detach buyer references: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	s.invalidator.Invalidate(ctx, rootPath)
	return user, nil
}
