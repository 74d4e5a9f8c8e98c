package postgres

import (
	"context"
	"database/sql"
	"errors"

	"evently/internal/domain"

	"github.com/lib/pq"
)

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) domain.OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (reference, event_id, buyer_id, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var buyerID sql.NullString
	if o.Buyer != nil {
		buyerID = nullable(o.Buyer.ID)
	}
	err := r.DB.QueryRowContext(ctx, query, o.Reference, o.EventID, buyerID, o.TotalAmount, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23503" {
			// Referenced event or buyer row is gone.
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *orderRepository) ListByEvent(ctx context.Context, eventID, search string) ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.reference, o.event_id, e.title, o.total_amount, o.created_at,
		       u.id, u.first_name, u.last_name
		FROM orders o
		JOIN events e ON e.id = o.event_id
		LEFT JOIN users u ON u.id = o.buyer_id
		WHERE o.event_id = $1
	`
	args := []interface{}{eventID}
	if search != "" {
		query += ` AND (u.first_name || ' ' || u.last_name) ILIKE '%' || $2 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o := &domain.Order{}
		var buyerID, buyerFirst, buyerLast sql.NullString
		if err := rows.Scan(&o.ID, &o.Reference, &o.EventID, &o.EventTitle, &o.TotalAmount, &o.CreatedAt,
			&buyerID, &buyerFirst, &buyerLast); err != nil {
			return nil, err
		}
		if buyerID.Valid {
			o.Buyer = &domain.UserSummary{ID: buyerID.String, FirstName: buyerFirst.String, LastName: buyerLast.String}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ClearBuyer(ctx context.Context, buyerID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET buyer_id = NULL WHERE buyer_id = $1`, buyerID)
	return err
}
