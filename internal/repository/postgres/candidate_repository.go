package postgres

import (
	"context"
	"errors"
	"fmt"

	"talent-network-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	user_id, full_name, headline, avatar_url,
	skills, education_level, preferred_areas,
	experience_tier, age, open_to_work, role, updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var skills, education, areas []string
	err := row.Scan(
		&c.UserID, &c.FullName, &c.Headline, &c.AvatarURL,
		pq.Array(&skills), pq.Array(&education), pq.Array(&areas),
		&c.ExperienceTier, &c.Age, &c.OpenToWork, &c.Role, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Skills = skills
	c.EducationLevel = education
	c.PreferredAreas = areas
	return &c, nil
}

// GetByUserID returns (nil, nil) when the candidate has no profile yet.
func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles WHERE user_id = $1`

	c, err := scanCandidate(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func (r *candidateRepository) Upsert(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidate_profiles (
			user_id, full_name, headline, avatar_url,
			skills, education_level, preferred_areas,
			experience_tier, age, open_to_work, role, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			headline = EXCLUDED.headline,
			avatar_url = EXCLUDED.avatar_url,
			skills = EXCLUDED.skills,
			education_level = EXCLUDED.education_level,
			preferred_areas = EXCLUDED.preferred_areas,
			experience_tier = EXCLUDED.experience_tier,
			age = EXCLUDED.age,
			open_to_work = EXCLUDED.open_to_work,
			role = EXCLUDED.role,
			updated_at = NOW()
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		c.UserID, c.FullName, c.Headline, c.AvatarURL,
		pq.Array(c.Skills), pq.Array(c.EducationLevel), pq.Array(c.PreferredAreas),
		c.ExperienceTier, c.Age, c.OpenToWork, c.Role,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) ListOpenToWorkByRole(ctx context.Context, role domain.JobRole) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidate_profiles
		WHERE open_to_work = TRUE AND role = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}
