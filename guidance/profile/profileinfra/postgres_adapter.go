package profileinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/compasshq/compass/guidance/profile"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresProfileRepository implements profile.Repository using PostgreSQL
type PostgresProfileRepository struct {
	db *sqlx.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type profileModel struct {
	UserID        string          `db:"user_id"`
	DiscoveryData json.RawMessage `db:"discovery_data"`
	ResumeLink    sql.NullString  `db:"resume_link"`
	ResumeText    sql.NullString  `db:"resume_text"`
	SelectedRole  sql.NullString  `db:"selected_role"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *profileModel) toEntity() (*profile.Profile, error) {
	var discovery *profile.Snapshot
	if len(m.DiscoveryData) > 0 {
		discovery = &profile.Snapshot{}
		if err := json.Unmarshal(m.DiscoveryData, discovery); err != nil {
			return nil, fmt.Errorf("failed to unmarshal discovery data: %w", err)
		}
	}

	return &profile.Profile{
		UserID:       kernel.UserID(m.UserID),
		Discovery:    discovery,
		ResumeLink:   kernel.BucketURL(m.ResumeLink.String),
		ResumeText:   m.ResumeText.String,
		SelectedRole: m.SelectedRole.String,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// GetByUserID retrieves the profile for a user
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*profile.Profile, error) {
	query := `
		SELECT user_id, discovery_data, resume_link, resume_text, selected_role, updated_at
		FROM profiles
		WHERE user_id = $1`

	var model profileModel
	if err := r.db.GetContext(ctx, &model, query, userID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrProfileNotFound().WithDetail("user_id", userID.String())
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return model.toEntity()
}

// SaveResumeText stores extracted resume text on the profile
func (r *PostgresProfileRepository) SaveResumeText(ctx context.Context, userID kernel.UserID, text string) error {
	query := `
		UPDATE profiles
		SET resume_text = $2, updated_at = NOW()
		WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID.String(), text); err != nil {
		return fmt.Errorf("failed to save resume text: %w", err)
	}
	return nil
}

// SaveResumeLink stores the signed resume URL on the profile
func (r *PostgresProfileRepository) SaveResumeLink(ctx context.Context, userID kernel.UserID, link kernel.BucketURL) error {
	query := `
		INSERT INTO profiles (user_id, resume_link, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET resume_link = EXCLUDED.resume_link, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID.String(), link.String()); err != nil {
		return fmt.Errorf("failed to save resume link: %w", err)
	}
	return nil
}

// SaveSelectedRole records the role the user picked from their recommendations
func (r *PostgresProfileRepository) SaveSelectedRole(ctx context.Context, userID kernel.UserID, roleTitle string) error {
	query := `
		UPDATE profiles
		SET selected_role = $2, updated_at = NOW()
		WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID.String(), roleTitle)
	if err != nil {
		return fmt.Errorf("failed to save selected role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return profile.ErrProfileNotFound().WithDetail("user_id", userID.String())
	}
	return nil
}
