package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"discovery_server/core/domain"
	"discovery_server/core/port/out"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EventRepository implements out.EventRepository
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *sqlx.DB) out.EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, location, venue, source_url, start_time, end_time, category, created_at`

func (r *EventRepository) Insert(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, title, description, location, venue, source_url, start_time, end_time, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.Venue,
		event.SourceURL,
		event.StartTime,
		event.EndTime,
		event.Category,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EventRepository) List(ctx context.Context, filter *domain.EventFilter) ([]*domain.Event, error) {
	query, args := buildEventListQuery(filter)

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]*domain.Event, len(rows))
	for i, row := range rows {
		events[i] = row.toDomain()
	}
	return events, nil
}

// buildEventListQuery assembles the one parameterized statement behind
// every filter combination. Conditions are collected independently so
// the text and category clauses never drift apart across combinations.
func buildEventListQuery(filter *domain.EventFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter != nil {
		if filter.Query != nil {
			pattern := "%" + escapeLikePattern(*filter.Query) + "%"
			conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
			args = append(args, pattern)
			argIdx++
		}
		if filter.Category != nil {
			conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
			args = append(args, *filter.Category)
			argIdx++
		}
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// created_at and id keep ordering deterministic when start times tie.
	query += " ORDER BY start_time ASC, created_at ASC, id ASC"

	if filter != nil && filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	return query, args
}

// escapeLikePattern neutralizes ILIKE metacharacters so user input is
// matched literally, never as pattern syntax.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// =============================================================================
// Row mapping
// =============================================================================

type eventRow struct {
	ID          uuid.UUID  `db:"id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Location    *string    `db:"location"`
	Venue       *string    `db:"venue"`
	SourceURL   string     `db:"source_url"`
	StartTime   time.Time  `db:"start_time"`
	EndTime     *time.Time `db:"end_time"`
	Category    *string    `db:"category"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r *eventRow) toDomain() *domain.Event {
	return &domain.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Venue:       r.Venue,
		SourceURL:   r.SourceURL,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}
