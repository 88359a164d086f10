package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-network-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type preferenceRepo struct {
	db *pgxpool.Pool
}

// NewPreferenceRepository creates a new HR preference repository
func NewPreferenceRepository(db *pgxpool.Pool) domain.PreferenceRepository {
	return &preferenceRepo{db: db}
}

const preferenceColumns = `
	id, user_id, name, required_skills, min_experience, location_type,
	hiring_location, education_level, min_age, max_age, role, created_at, updated_at`

func scanPreference(row pgx.Row) (*domain.Preference, error) {
	var p domain.Preference
	var skills, locations, education []string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, pq.Array(&skills), &p.MinExperienceYears, &p.LocationType,
		pq.Array(&locations), pq.Array(&education), &p.MinAge, &p.MaxAge, &p.Role, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.RequiredSkills = skills
	p.HiringLocation = locations
	p.EducationLevel = education
	return &p, nil
}

// CreateWithLimit counts the owner's preferences under a row lock on the user so
// two concurrent creates cannot both pass the limit.
func (r *preferenceRepo) CreateWithLimit(ctx context.Context, p *domain.Preference, limit int) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var ownerID string
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, p.UserID).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("lock preference owner: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM hr_preferences WHERE user_id = $1`, p.UserID).Scan(&count); err != nil {
		return false, fmt.Errorf("count preferences: %w", err)
	}
	if count >= limit {
		return false, nil
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO hr_preferences (
			id, user_id, name, required_skills, min_experience, location_type,
			hiring_location, education_level, min_age, max_age, role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = tx.Exec(ctx, query,
		p.ID, p.UserID, p.Name, pq.Array(p.RequiredSkills), p.MinExperienceYears, p.LocationType,
		pq.Array(p.HiringLocation), pq.Array(p.EducationLevel), p.MinAge, p.MaxAge, p.Role, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert preference: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *preferenceRepo) GetByID(ctx context.Context, id string) (*domain.Preference, error) {
	query := `SELECT ` + preferenceColumns + ` FROM hr_preferences WHERE id = $1`
	p, err := scanPreference(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get preference: %w", err)
	}
	return p, nil
}

func (r *preferenceRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Preference, error) {
	query := `SELECT ` + preferenceColumns + ` FROM hr_preferences WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	prefs := []domain.Preference{}
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		prefs = append(prefs, *p)
	}
	return prefs, rows.Err()
}

// Update edits a preference in place. Ownership is part of the WHERE clause.
func (r *preferenceRepo) Update(ctx context.Context, p *domain.Preference) error {
	query := `
		UPDATE hr_preferences SET
			name = $3, required_skills = $4, min_experience = $5, location_type = $6,
			hiring_location = $7, education_level = $8, min_age = $9, max_age = $10,
			role = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.UserID, p.Name, pq.Array(p.RequiredSkills), p.MinExperienceYears, p.LocationType,
		pq.Array(p.HiringLocation), pq.Array(p.EducationLevel), p.MinAge, p.MaxAge, p.Role,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update preference: %w", err)
	}
	return nil
}

func (r *preferenceRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM hr_preferences WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
