package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `
		INSERT INTO attendees (id, name, email, event_id, registered_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query, a.ID, a.Name, a.Email, a.EventID, toMillis(a.RegisteredAt))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert attendee: %w", err)
	}
	return nil
}

func (r *attendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	query := `
		SELECT id, name, email, event_id, registered_at
		FROM attendees
		WHERE id = ?
	`
	a, err := scanAttendee(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT id, name, email, event_id, registered_at
		FROM attendees
		WHERE event_id = ?
		ORDER BY registered_at DESC, rowid DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.Attendee
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (r *attendeeRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM attendees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	return requireAffected(result)
}

func (r *attendeeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM attendees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return n, nil
}

func scanAttendee(row rowScanner) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	var registeredAt int64
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.EventID, &registeredAt); err != nil {
		return nil, err
	}
	a.RegisteredAt = fromMillis(registeredAt)
	return a, nil
}
