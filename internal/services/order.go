package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"evently/internal/domain"
)

type orderService struct {
	orderRepo      domain.OrderRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewOrderService creates the checkout-facing order service. emailService
// may be nil to disable confirmation emails.
func NewOrderService(orderRepo domain.OrderRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// Create records an order with a price snapshot. Free tickets snapshot a
// zero amount regardless of the amount passed in.
func (s *orderService) Create(ctx context.Context, eventID, buyerID, amount string, isFree bool) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" || buyerID == "" {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	buyer, err := s.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get buyer: %w", err)
	}

	if isFree {
		amount = "0"
	}
	order := &domain.Order{
		Reference:   uuid.NewString(),
		EventID:     event.ID,
		EventTitle:  event.Title,
		Buyer:       &domain.UserSummary{ID: buyer.ID, FirstName: buyer.FirstName, LastName: buyer.LastName},
		TotalAmount: amount,
		CreatedAt:   time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.emailService != nil && buyer.Email != "" {
		data := &domain.OrderConfirmationEmailData{
			Email:       buyer.Email,
			FirstName:   buyer.FirstName,
			EventTitle:  event.Title,
			Reference:   order.Reference,
			TotalAmount: order.TotalAmount,
			IsFree:      isFree,
		}
		// Best effort: a failed confirmation email never fails the order.
		_ = s.emailService.SendOrderConfirmation(ctx, data)
	}
	return order, nil
}

func (s *orderService) ListByEvent(ctx context.Context, eventID, search string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	orders, err := s.orderRepo.ListByEvent(ctx, eventID, search)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}
