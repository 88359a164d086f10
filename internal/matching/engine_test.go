package matching_test

import (
	"fmt"
	"testing"

	"talent-network-backend/internal/domain"
	"talent-network-backend/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func basePreference() domain.Preference {
	return domain.Preference{
		RequiredSkills:     []string{"React", "SQL"},
		MinExperienceYears: 2,
		MinAge:             19,
		HiringLocation:     []string{"London"},
		Role:               domain.RoleSoftwareEngineer,
	}
}

func baseCandidate(id string) domain.Candidate {
	return domain.Candidate{
		UserID:         id,
		Skills:         []string{"React"},
		ExperienceTier: domain.ExperienceThreeToFiveY,
		Age:            intPtr(25),
		PreferredAreas: []string{"london"},
		EducationLevel: []string{},
		OpenToWork:     true,
		Role:           domain.RoleSoftwareEngineer,
	}
}

func TestExperienceYears(t *testing.T) {
	assert.Equal(t, 0.0, matching.ExperienceYears(domain.ExperienceNone))
	assert.Equal(t, 0.5, matching.ExperienceYears(domain.ExperienceUnder1Y))
	assert.Equal(t, 1.5, matching.ExperienceYears(domain.ExperienceOneToTwoY))
	assert.Equal(t, 4.0, matching.ExperienceYears(domain.ExperienceThreeToFiveY))
	assert.Equal(t, 6.0, matching.ExperienceYears(domain.ExperienceFivePlusY))
	assert.Equal(t, 0.0, matching.ExperienceYears("SOMETHING_ELSE"))
}

func TestScoreLondonScenario(t *testing.T) {
	score, b := matching.Evaluate(baseCandidate("c1"), basePreference())

	assert.Equal(t, 100, score)
	assert.True(t, b.LocationGatePassed)
	assert.Equal(t, 30.0, b.Experience)
	assert.Equal(t, 20.0, b.Skills)
	assert.Equal(t, 20.0, b.Education)
	assert.Equal(t, 10.0, b.Age)
	assert.Equal(t, 20.0, b.Location)
	assert.Equal(t, []string{"React"}, b.MatchedSkills)
}

func TestScoreLocationVeto(t *testing.T) {
	c := baseCandidate("c1")
	c.PreferredAreas = []string{"Manchester"}
	c.Skills = []string{"React", "SQL"}

	assert.Equal(t, 0, matching.Score(c, basePreference()))
	assert.Empty(t, matching.Rank([]domain.Candidate{c}, basePreference(), 20))
}

func TestScoreLocationSubstringEitherDirection(t *testing.T) {
	pref := basePreference()
	pref.HiringLocation = []string{"Greater London"}

	c := baseCandidate("c1")
	c.PreferredAreas = []string{" LONDON "}
	assert.Greater(t, matching.Score(c, pref), 0)

	pref.HiringLocation = []string{"lon"}
	c.PreferredAreas = []string{"London, UK"}
	assert.Greater(t, matching.Score(c, pref), 0)
}

func TestScoreWithoutLocationConstraint(t *testing.T) {
	pref := basePreference()
	pref.HiringLocation = nil

	c := baseCandidate("c1")
	c.PreferredAreas = nil

	score, b := matching.Evaluate(c, pref)
	// 30 + 20 + 20 + 10, no location bonus
	assert.Equal(t, 80, score)
	assert.Equal(t, 0.0, b.Location)
	assert.True(t, b.LocationGatePassed)
}

func TestScoreEmptyRequiredSkillsGivesFullSkills(t *testing.T) {
	for _, skills := range [][]string{nil, {}, {"  "}} {
		pref := basePreference()
		pref.RequiredSkills = skills

		c := baseCandidate("c1")
		c.Skills = nil

		_, b := matching.Evaluate(c, pref)
		assert.Equal(t, 40.0, b.Skills, "required skills %v", skills)
	}
}

func TestScoreSkillsCaseInsensitiveAndRounded(t *testing.T) {
	pref := basePreference()
	pref.HiringLocation = nil
	pref.RequiredSkills = []string{"go", "SQL", "docker"}
	pref.MinExperienceYears = 10

	c := baseCandidate("c1")
	c.Skills = []string{"Go", "sql"}
	c.Age = nil

	score, b := matching.Evaluate(c, pref)
	// skills 40*2/3 = 26.67 + education 20 = 46.67 -> 47
	assert.InDelta(t, 26.666, b.Skills, 0.01)
	assert.Equal(t, 47, score)
}

func TestScoreEducation(t *testing.T) {
	pref := basePreference()
	pref.EducationLevel = []string{"Bachelor", "Master"}

	c := baseCandidate("c1")
	c.EducationLevel = []string{"high school"}
	_, b := matching.Evaluate(c, pref)
	assert.Equal(t, 0.0, b.Education)

	c.EducationLevel = []string{"master"}
	_, b = matching.Evaluate(c, pref)
	assert.Equal(t, 20.0, b.Education)
}

func TestScoreAge(t *testing.T) {
	cases := []struct {
		name   string
		age    *int
		minAge int
		maxAge *int
		want   float64
	}{
		{"missing age", nil, 19, nil, 0},
		{"below min", intPtr(18), 19, nil, 0},
		{"at min", intPtr(19), 19, nil, 10},
		{"no max", intPtr(70), 19, nil, 10},
		{"at max", intPtr(30), 19, intPtr(30), 10},
		{"above max", intPtr(31), 19, intPtr(30), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pref := basePreference()
			pref.MinAge = tc.minAge
			pref.MaxAge = tc.maxAge
			c := baseCandidate("c1")
			c.Age = tc.age
			_, b := matching.Evaluate(c, pref)
			assert.Equal(t, tc.want, b.Age)
		})
	}
}

func TestScoreExperienceThreshold(t *testing.T) {
	pref := basePreference()
	pref.MinExperienceYears = 1.5

	c := baseCandidate("c1")
	c.ExperienceTier = domain.ExperienceOneToTwoY
	_, b := matching.Evaluate(c, pref)
	assert.Equal(t, 30.0, b.Experience)

	c.ExperienceTier = domain.ExperienceUnder1Y
	_, b = matching.Evaluate(c, pref)
	assert.Equal(t, 0.0, b.Experience)
}

func TestEvaluateDoesNotMutateInputs(t *testing.T) {
	pref := basePreference()
	pref.RequiredSkills = []string{" React ", "SQL"}
	c := baseCandidate("c1")
	c.Skills = []string{"REACT"}

	matching.Evaluate(c, pref)
	matching.Rank([]domain.Candidate{c}, pref, 5)

	assert.Equal(t, []string{" React ", "SQL"}, pref.RequiredSkills)
	assert.Equal(t, []string{"REACT"}, c.Skills)
	assert.Equal(t, []string{"london"}, c.PreferredAreas)
}

func TestRankFiltersOrdersAndCaps(t *testing.T) {
	pref := basePreference()
	pref.HiringLocation = nil

	var candidates []domain.Candidate
	for i := 0; i < 30; i++ {
		c := baseCandidate(fmt.Sprintf("c%02d", i))
		if i%2 == 0 {
			c.Skills = []string{"React", "SQL"}
		}
		candidates = append(candidates, c)
	}

	closed := baseCandidate("closed")
	closed.OpenToWork = false
	closed.Skills = []string{"React", "SQL"}

	otherRole := baseCandidate("designer")
	otherRole.Role = domain.RoleDesigner

	candidates = append(candidates, closed, otherRole)

	results := matching.Rank(candidates, pref, 20)
	require.Len(t, results, 20)

	for i, r := range results {
		assert.Greater(t, r.MatchScore, 0)
		assert.NotEqual(t, "closed", r.UserID)
		assert.NotEqual(t, "designer", r.UserID)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].MatchScore, r.MatchScore)
		}
	}
	assert.Equal(t, 100, results[0].MatchScore)
	assert.Equal(t, "c00", results[0].UserID)
}

func TestRankDefaultLimitAndEmptyInput(t *testing.T) {
	assert.Empty(t, matching.Rank(nil, basePreference(), 0))

	var candidates []domain.Candidate
	for i := 0; i < 25; i++ {
		candidates = append(candidates, baseCandidate(fmt.Sprintf("c%02d", i)))
	}
	assert.Len(t, matching.Rank(candidates, basePreference(), 0), matching.DefaultLimit)
}

func TestRankDropsZeroScores(t *testing.T) {
	pref := basePreference()
	pref.HiringLocation = nil
	pref.MinExperienceYears = 10
	pref.EducationLevel = []string{"PhD"}
	pref.RequiredSkills = []string{"Rust"}

	c := baseCandidate("nothing")
	c.Age = nil

	assert.Equal(t, 0, matching.Score(c, pref))
	assert.Empty(t, matching.Rank([]domain.Candidate{c}, pref, 20))
}
