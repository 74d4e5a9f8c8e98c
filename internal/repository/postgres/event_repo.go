package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"evently/internal/domain"
)

// eventColumns is the enriched projection applied to every event read:
// the event row plus the organizer and category summaries inlined via the
// LEFT JOINs in eventFrom.
const eventColumns = `
	e.id, e.title, e.description, e.location, e.image_url,
	e.start_date_time, e.end_date_time, e.price, e.is_free, e.url, e.created_at,
	u.id, u.first_name, u.last_name,
	c.id, c.name
`

const eventFrom = `
	FROM events e
	LEFT JOIN users u ON u.id = e.organizer_id
	LEFT JOIN categories c ON c.id = e.category_id
`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var orgID, orgFirst, orgLast sql.NullString
	var catID, catName sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.ImageURL,
		&e.StartDateTime, &e.EndDateTime, &e.Price, &e.IsFree, &e.URL, &e.CreatedAt,
		&orgID, &orgFirst, &orgLast,
		&catID, &catName,
	)
	if err != nil {
		return nil, err
	}
	if orgID.Valid {
		e.Organizer = &domain.UserSummary{ID: orgID.String, FirstName: orgFirst.String, LastName: orgLast.String}
	}
	if catID.Valid {
		e.Category = &domain.CategorySummary{ID: catID.String, Name: catName.String}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, draft *domain.EventDraft) (*domain.Event, error) {
	price := draft.Price
	if draft.IsFree {
		price = "0"
	}
	query := `
		INSERT INTO events (title, description, location, image_url, start_date_time, end_date_time, price, is_free, url, category_id, organizer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query,
		draft.Title, draft.Description, draft.Location, draft.ImageURL,
		draft.StartDateTime, draft.EndDateTime, price, draft.IsFree, draft.URL,
		nullable(draft.CategoryID), nullable(draft.OrganizerID),
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + eventFrom + ` WHERE e.id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List applies the conjunctive filter, sorts newest first, and returns one
// page plus the total count of matching rows. Zero-valued filter fields add
// no constraint. TitleQuery is passed to ILIKE verbatim, so % and _ in the
// search text act as wildcards.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var conds []string
	var args []interface{}
	n := 1
	if filter.TitleQuery != "" {
		conds = append(conds, fmt.Sprintf("e.title ILIKE '%%' || $%d || '%%'", n))
		args = append(args, filter.TitleQuery)
		n++
	}
	if filter.CategoryID != "" {
		conds = append(conds, fmt.Sprintf("e.category_id = $%d", n))
		args = append(args, filter.CategoryID)
		n++
	}
	if filter.OrganizerID != "" {
		conds = append(conds, fmt.Sprintf("e.organizer_id = $%d", n))
		args = append(args, filter.OrganizerID)
		n++
	}
	if filter.ExcludeEventID != "" {
		conds = append(conds, fmt.Sprintf("e.id <> $%d", n))
		args = append(args, filter.ExcludeEventID)
		n++
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d`,
		eventColumns, eventFrom, where, n, n+1)
	rows, err := r.DB.QueryContext(ctx, query, append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM events e` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, patch *domain.EventPatch) (*domain.Event, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
	}
	if patch.StartDateTime != nil {
		set("start_date_time", *patch.StartDateTime)
	}
	if patch.EndDateTime != nil {
		set("end_date_time", *patch.EndDateTime)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.IsFree != nil {
		set("is_free", *patch.IsFree)
	}
	if patch.URL != nil {
		set("url", *patch.URL)
	}
	if patch.CategoryID != nil {
		set("category_id", nullable(*patch.CategoryID))
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, patch.ID)
	}
	args = append(args, patch.ID)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d RETURNING id`, strings.Join(setClauses, ", "), n)
	var id string
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ClearOrganizer(ctx context.Context, organizerID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE events SET organizer_id = NULL WHERE organizer_id = $1`, organizerID)
	return err
}

// nullable maps an empty string to SQL NULL for optional reference columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
