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
	"github.com/lib/pq"
)

// UserRepository implements out.UserRepository
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) out.UserRepository {
	return &UserRepository{db: db}
}

// =============================================================================
// Users
// =============================================================================

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, location_preference, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.LocationPreference,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user: %w", out.ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, name, location_preference, created_at FROM users WHERE id = $1`

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), nil
}

// =============================================================================
// Preferences
// =============================================================================

func (r *UserRepository) ListPreferences(ctx context.Context, userID uuid.UUID) ([]*domain.UserPreference, error) {
	query := `
		SELECT id, user_id, category, weight, created_at
		FROM user_preferences
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	var rows []preferenceRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	prefs := make([]*domain.UserPreference, len(rows))
	for i, row := range rows {
		prefs[i] = row.toDomain()
	}
	return prefs, nil
}

// UpsertPreference is a single conflict-resolving write, so concurrent
// upserts for the same (user_id, category) pair cannot race. RETURNING
// surfaces the surviving row: on update the original id and created_at
// win over the freshly generated ones.
func (r *UserRepository) UpsertPreference(ctx context.Context, pref *domain.UserPreference) (*domain.UserPreference, error) {
	query := `
		INSERT INTO user_preferences (id, user_id, category, weight, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category) DO UPDATE SET weight = EXCLUDED.weight
		RETURNING id, created_at`

	stored := *pref
	err := r.db.QueryRowxContext(ctx, query,
		pref.ID,
		pref.UserID,
		pref.Category,
		pref.Weight,
		pref.CreatedAt,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert preference: %w", err)
	}
	return &stored, nil
}

// =============================================================================
// Interactions
// =============================================================================

func (r *UserRepository) InsertInteraction(ctx context.Context, interaction *domain.UserInteraction) error {
	query := `
		INSERT INTO user_interactions (id, user_id, event_id, interaction_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.EventID,
		string(interaction.InteractionType),
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *UserRepository) ListInteractions(ctx context.Context, filter *domain.InteractionFilter) ([]*domain.UserInteraction, error) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
	args = append(args, filter.UserID)
	argIdx++

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		conditions = append(conditions, fmt.Sprintf("interaction_type = ANY($%d)", argIdx))
		args = append(args, pq.Array(types))
		argIdx++
	}

	query := `
		SELECT id, user_id, event_id, interaction_type, created_at
		FROM user_interactions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	var rows []interactionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	interactions := make([]*domain.UserInteraction, len(rows))
	for i, row := range rows {
		interactions[i] = row.toDomain()
	}
	return interactions, nil
}

func (r *UserRepository) RecentInteractionsWithEvents(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.InteractionWithEvent, error) {
	if limit <= 0 {
		limit = domain.ProfileInteractionLimit
	}

	query := `
		SELECT ui.interaction_type, e.title AS event_title, e.category AS event_category, ui.created_at
		FROM user_interactions ui
		JOIN events e ON ui.event_id = e.id
		WHERE ui.user_id = $1
		ORDER BY ui.created_at DESC, ui.id DESC
		LIMIT $2`

	var rows []interactionWithEventRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("recent interactions: %w", err)
	}

	result := make([]*domain.InteractionWithEvent, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

// =============================================================================
// Row mapping
// =============================================================================

type userRow struct {
	ID                 uuid.UUID `db:"id"`
	Email              string    `db:"email"`
	Name               *string   `db:"name"`
	LocationPreference *string   `db:"location_preference"`
	CreatedAt          time.Time `db:"created_at"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:                 r.ID,
		Email:              r.Email,
		Name:               r.Name,
		LocationPreference: r.LocationPreference,
		CreatedAt:          r.CreatedAt,
	}
}

type preferenceRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Category  string    `db:"category"`
	Weight    int       `db:"weight"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *preferenceRow) toDomain() *domain.UserPreference {
	return &domain.UserPreference{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  r.Category,
		Weight:    r.Weight,
		CreatedAt: r.CreatedAt,
	}
}

type interactionRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	EventID         uuid.UUID `db:"event_id"`
	InteractionType string    `db:"interaction_type"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *interactionRow) toDomain() *domain.UserInteraction {
	return &domain.UserInteraction{
		ID:              r.ID,
		UserID:          r.UserID,
		EventID:         r.EventID,
		InteractionType: domain.InteractionType(r.InteractionType),
		CreatedAt:       r.CreatedAt,
	}
}

type interactionWithEventRow struct {
	InteractionType string    `db:"interaction_type"`
	EventTitle      string    `db:"event_title"`
	EventCategory   *string   `db:"event_category"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *interactionWithEventRow) toDomain() *domain.InteractionWithEvent {
	return &domain.InteractionWithEvent{
		InteractionType: domain.InteractionType(r.InteractionType),
		EventTitle:      r.EventTitle,
		EventCategory:   r.EventCategory,
		CreatedAt:       r.CreatedAt,
	}
}
