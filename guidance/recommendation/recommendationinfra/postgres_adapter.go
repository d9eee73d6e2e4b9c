package recommendationinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/compasshq/compass/guidance/recommendation"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresRecommendationRepository implements recommendation.Repository
// using PostgreSQL
type PostgresRecommendationRepository struct {
	db *sqlx.DB
}

// NewPostgresRecommendationRepository creates a new PostgreSQL
// recommendation repository
func NewPostgresRecommendationRepository(db *sqlx.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type recommendationModel struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	RoleTitle       string    `db:"role_title"`
	Description     string    `db:"description"`
	WhyProfessional string    `db:"why_professional"`
	WhyPersonal     string    `db:"why_personal"`
	CreatedAt       time.Time `db:"created_at"`
}

func (m *recommendationModel) toEntity() recommendation.Recommendation {
	return recommendation.Recommendation{
		ID:                      kernel.RecommendationID(m.ID),
		UserID:                  kernel.UserID(m.UserID),
		RoleTitle:               m.RoleTitle,
		Description:             m.Description,
		WhyItFitsProfessionally: m.WhyProfessional,
		WhyItFitsPersonally:     m.WhyPersonal,
		CreatedAt:               m.CreatedAt,
	}
}

func fromEntity(rec *recommendation.Recommendation) *recommendationModel {
	return &recommendationModel{
		ID:              rec.ID.String(),
		UserID:          rec.UserID.String(),
		RoleTitle:       rec.RoleTitle,
		Description:     rec.Description,
		WhyProfessional: rec.WhyItFitsProfessionally,
		WhyPersonal:     rec.WhyItFitsPersonally,
		CreatedAt:       rec.CreatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Insert appends one recommendation row; older rows for the user are kept
func (r *PostgresRecommendationRepository) Insert(ctx context.Context, rec *recommendation.Recommendation) error {
	model := fromEntity(rec)

	query := `
		INSERT INTO recommendations (
			id, user_id, role_title, description, why_professional, why_personal, created_at
		) VALUES (
			:id, :user_id, :role_title, :description, :why_professional, :why_personal, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// ListRecentByUser retrieves up to limit most-recently-created rows
func (r *PostgresRecommendationRepository) ListRecentByUser(ctx context.Context, userID kernel.UserID, limit int) ([]recommendation.Recommendation, error) {
	query := `
		SELECT id, user_id, role_title, description, why_professional, why_personal, created_at
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`

	var models []recommendationModel
	if err := r.db.SelectContext(ctx, &models, query, userID.String(), limit); err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}

	records := make([]recommendation.Recommendation, 0, len(models))
	for i := range models {
		records = append(records, models[i].toEntity())
	}
	return records, nil
}
