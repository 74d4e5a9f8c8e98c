package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently/internal/domain"
)

type orderFixture struct {
	orderRepo *fakeOrderRepo
	eventRepo *fakeEventRepo
	userRepo  *fakeUserRepo
	email     *fakeEmailService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo: newFakeOrderRepo(),
		eventRepo: newFakeEventRepo(),
		userRepo:  newFakeUserRepo(),
		email:     &fakeEmailService{},
	}
	f.userRepo.add(&domain.User{ID: "user-1", ExternalKey: "clerk_1", FirstName: "Ada", Email: "ada@example.com"})
	f.eventRepo.add(&domain.Event{ID: "event-1", Title: "Jazz Night", Price: "25"})
	return f
}

func (f *orderFixture) service() domain.OrderService {
	return NewOrderService(f.orderRepo, f.eventRepo, f.userRepo, f.email, testTimeout)
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots event title and buyer", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		order, err := svc.Create(ctx, "event-1", "user-1", "25", false)
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.NotEmpty(t, order.Reference)
		assert.Equal(t, "Jazz Night", order.EventTitle)
		assert.Equal(t, "25", order.TotalAmount)
		require.NotNil(t, order.Buyer)
		assert.Equal(t, "Ada", order.Buyer.FirstName)

		require.Len(t, f.email.confirmations, 1)
		assert.Equal(t, order.Reference, f.email.confirmations[0].Reference)
	})

	t.Run("free ticket snapshots zero amount", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		order, err := svc.Create(ctx, "event-1", "user-1", "25", true)
		require.NoError(t, err)
		assert.Equal(t, "0", order.TotalAmount)
	})

	t.Run("references are unique per order", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		first, err := svc.Create(ctx, "event-1", "user-1", "25", false)
		require.NoError(t, err)
		second, err := svc.Create(ctx, "event-1", "user-1", "25", false)
		require.NoError(t, err)
		assert.NotEqual(t, first.Reference, second.Reference)
	})

	t.Run("missing event", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		_, err := svc.Create(ctx, "ghost-event", "user-1", "25", false)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, f.orderRepo.orders)
	})

	t.Run("missing buyer", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		_, err := svc.Create(ctx, "event-1", "ghost", "25", false)
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Empty(t, f.orderRepo.orders)
	})

	t.Run("blank identifiers are rejected", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		_, err := svc.Create(ctx, "", "user-1", "25", false)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.Create(ctx, "event-1", "", "25", false)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("failed confirmation email never fails the order", func(t *testing.T) {
		f := newOrderFixture()
		f.email.err = errors.New("ses unavailable")
		svc := f.service()

		_, err := svc.Create(ctx, "event-1", "user-1", "25", false)
		require.NoError(t, err)
		assert.Len(t, f.orderRepo.orders, 1)
	})
}

func TestOrderService_ListByEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty result is an empty slice", func(t *testing.T) {
		f := newOrderFixture()
		svc := f.service()

		orders, err := svc.ListByEvent(ctx, "event-1", "")
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("buyer name search", func(t *testing.T) {
		f := newOrderFixture()
		f.orderRepo.orders = append(f.orderRepo.orders,
			&domain.Order{ID: "order-1", EventID: "event-1", Buyer: &domain.UserSummary{ID: "user-1", FirstName: "Ada", LastName: "Lovelace"}},
			&domain.Order{ID: "order-2", EventID: "event-1", Buyer: &domain.UserSummary{ID: "user-2", FirstName: "Grace", LastName: "Hopper"}},
		)
		svc := f.service()

		orders, err := svc.ListByEvent(ctx, "event-1", "grace hopper")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "order-2", orders[0].ID)
	})
}
