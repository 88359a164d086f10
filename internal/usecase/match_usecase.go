package usecase

import (
	"context"
	"time"

	"talent-network-backend/internal/domain"
	"talent-network-backend/internal/matching"
	"talent-network-backend/pkg/apperror"
	"talent-network-backend/pkg/logger"
	"talent-network-backend/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

type matchUsecase struct {
	candidateRepo domain.CandidateRepository
	preferenceUC  domain.PreferenceUsecase
	validate      *validator.Validate
	limit         int
}

// NewMatchUsecase wires the match engine to its repositories. limit caps the
// number of ranked results.
func NewMatchUsecase(candidateRepo domain.CandidateRepository, preferenceUC domain.PreferenceUsecase, validate *validator.Validate, limit int) domain.MatchUsecase {
	return &matchUsecase{
		candidateRepo: candidateRepo,
		preferenceUC:  preferenceUC,
		validate:      validate,
		limit:         limit,
	}
}

func (u *matchUsecase) Match(ctx context.Context, pref domain.Preference) ([]domain.MatchResult, error) {
	if err := requireRole(ctx, domain.RoleHR, domain.RoleAdmin); err != nil {
		return nil, apperror.Forbidden("Only HR accounts can search candidates")
	}
	if pref.Name == "" {
		pref.Name = "ad-hoc"
	}
	if err := preparePreference(u.validate, &pref); err != nil {
		return nil, err
	}
	return u.rank(ctx, "adhoc", pref)
}

func (u *matchUsecase) MatchSaved(ctx context.Context, userID, preferenceID string) ([]domain.MatchResult, error) {
	pref, err := u.preferenceUC.Get(ctx, userID, preferenceID)
	if err != nil {
		metrics.MatchQueries.WithLabelValues("saved", string(apperror.KindOf(err))).Inc()
		return nil, err
	}
	return u.rank(ctx, "saved", *pref)
}

func (u *matchUsecase) rank(ctx context.Context, source string, pref domain.Preference) ([]domain.MatchResult, error) {
	start := time.Now()
	defer func() { metrics.MatchDuration.Observe(time.Since(start).Seconds()) }()

	candidates, err := u.candidateRepo.ListOpenToWorkByRole(ctx, pref.Role)
	if err != nil {
		metrics.MatchQueries.WithLabelValues(source, string(apperror.KindInternal)).Inc()
		return nil, apperror.Internal(err)
	}
	metrics.MatchCandidatesScored.Observe(float64(len(candidates)))

	results := matching.Rank(candidates, pref, u.limit)
	metrics.MatchQueries.WithLabelValues(source, "ok").Inc()
	logger.Log.Debug("Ranked candidates",
		"source", source,
		"role", pref.Role,
		"candidates", len(candidates),
		"results", len(results),
	)
	return results, nil
}
