package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

const eventColumns = `id, title, description, date, location, capacity, tickets_sold, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `
		INSERT INTO events (id, title, description, date, location, capacity, tickets_sold, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.DateString(), e.Location, e.Capacity, e.TicketsSold,
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var where []string
	var args []any
	if t := strings.TrimSpace(filter.Title); t != "" {
		where = append(where, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(t)+"%")
	}
	if filter.Date != nil {
		where = append(where, `date = ?`)
		args = append(args, filter.Date.Format(domain.DateLayout))
	}
	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date ASC, title ASC`

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = ?, description = ?, date = ?, location = ?, capacity = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.Title, e.Description, e.DateString(), e.Location, e.Capacity, toMillis(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireAffected(result)
}

// Delete removes the event; attendees go with it through ON DELETE CASCADE.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(result)
}

func (r *eventRepository) IncrementTicketsSold(ctx context.Context, id string) error {
	q := conn(ctx, r.DB)
	query := `
		UPDATE events SET tickets_sold = tickets_sold + 1, updated_at = ?
		WHERE id = ? AND tickets_sold < capacity
	`
	result, err := q.ExecContext(ctx, query, toMillis(time.Now()), id)
	if err != nil {
		return fmt.Errorf("increment tickets sold: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment tickets sold: %w", err)
	}
	if n > 0 {
		return nil
	}
	var exists int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if exists == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrCapacityReached
}

func (r *eventRepository) DecrementTicketsSold(ctx context.Context, id string) error {
	query := `
		UPDATE events SET tickets_sold = max(tickets_sold - 1, 0), updated_at = ?
		WHERE id = ?
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, toMillis(time.Now()), id)
	if err != nil {
		return fmt.Errorf("decrement tickets sold: %w", err)
	}
	return requireAffected(result)
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func (r *eventRepository) SumTicketsSold(ctx context.Context) (int, error) {
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COALESCE(SUM(tickets_sold), 0) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum tickets sold: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var date string
	var createdAt, updatedAt int64
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Location, &e.Capacity, &e.TicketsSold, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d, err := time.ParseInLocation(domain.DateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("event %s has malformed date %q: %w", e.ID, date, err)
	}
	e.Date = d
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return e, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
