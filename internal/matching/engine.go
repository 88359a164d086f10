// Package matching scores candidate profiles against an HR preference and
// ranks them. Everything here is a pure function of its inputs.
package matching

import (
	"math"
	"sort"
	"strings"

	"talent-network-backend/internal/domain"
)

// Component weights. Location counts twice: it vetoes the candidate when it
// fails and adds LocationWeight when it passes.
const (
	ExperienceWeight = 30.0
	SkillsWeight     = 40.0
	EducationWeight  = 20.0
	AgeWeight        = 10.0
	LocationWeight   = 20.0

	MaxScore = 100
	// DefaultLimit caps the ranked list when the caller passes a non-positive limit.
	DefaultLimit = 20
)

// ExperienceYears maps a tier to the years compared against MinExperienceYears.
func ExperienceYears(tier domain.ExperienceTier) float64 {
	switch tier {
	case domain.ExperienceUnder1Y:
		return 0.5
	case domain.ExperienceOneToTwoY:
		return 1.5
	case domain.ExperienceThreeToFiveY:
		return 4
	case domain.ExperienceFivePlusY:
		return 6
	default:
		return 0
	}
}

// Evaluate scores c against pref and returns the rounded score with its breakdown.
func Evaluate(c domain.Candidate, pref domain.Preference) (int, domain.MatchBreakdown) {
	var b domain.MatchBreakdown

	hiring := normalizeAll(pref.HiringLocation)
	if len(hiring) > 0 {
		if !locationOverlaps(normalizeAll(c.PreferredAreas), hiring) {
			return 0, b
		}
		b.LocationGatePassed = true
		b.Location = LocationWeight
	} else {
		b.LocationGatePassed = true
	}

	if ExperienceYears(c.ExperienceTier) >= pref.MinExperienceYears {
		b.Experience = ExperienceWeight
	}

	b.MatchedSkills = matchedSkills(c.Skills, pref.RequiredSkills)
	required := len(normalizeAll(pref.RequiredSkills))
	if required == 0 {
		b.Skills = SkillsWeight
	} else {
		b.Skills = SkillsWeight * float64(len(b.MatchedSkills)) / float64(max(1, required))
	}

	education := normalizeAll(pref.EducationLevel)
	if len(education) == 0 || intersects(normalizeAll(c.EducationLevel), education) {
		b.Education = EducationWeight
	}

	if ageInRange(c.Age, pref.MinAge, pref.MaxAge) {
		b.Age = AgeWeight
	}

	total := b.Experience + b.Skills + b.Education + b.Age + b.Location
	return clamp(int(math.Round(total))), b
}

// Score is Evaluate without the breakdown.
func Score(c domain.Candidate, pref domain.Preference) int {
	score, _ := Evaluate(c, pref)
	return score
}

// Rank scores every eligible candidate, drops zero scores, and returns the
// best limit results ordered by score descending. Candidates that are not open
// to work or target a different role are skipped even if the caller passed them.
func Rank(candidates []domain.Candidate, pref domain.Preference, limit int) []domain.MatchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if !c.OpenToWork || c.Role != pref.Role {
			continue
		}
		score, breakdown := Evaluate(c, pref)
		if score <= 0 {
			continue
		}
		results = append(results, toResult(c, score, breakdown))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].UserID < results[j].UserID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func toResult(c domain.Candidate, score int, b domain.MatchBreakdown) domain.MatchResult {
	res := domain.MatchResult{
		UserID:         c.UserID,
		FullName:       c.FullName,
		Headline:       c.Headline,
		AvatarURL:      c.AvatarURL,
		Skills:         append([]string(nil), c.Skills...),
		PreferredAreas: append([]string(nil), c.PreferredAreas...),
		ExperienceTier: c.ExperienceTier,
		MatchScore:     score,
		Breakdown:      b,
	}
	if c.Age != nil {
		age := *c.Age
		res.Age = &age
	}
	return res
}

func ageInRange(age *int, minAge int, maxAge *int) bool {
	if age == nil || *age < minAge {
		return false
	}
	return maxAge == nil || *age <= *maxAge
}

// locationOverlaps reports whether any area contains a hiring token or is
// contained by one. Both sides are already lower-cased.
func locationOverlaps(areas, hiring []string) bool {
	for _, area := range areas {
		for _, loc := range hiring {
			if strings.Contains(area, loc) || strings.Contains(loc, area) {
				return true
			}
		}
	}
	return false
}

// matchedSkills returns the required skills the candidate has, in the order
// they appear in required, without duplicates.
func matchedSkills(have, required []string) []string {
	owned := make(map[string]struct{}, len(have))
	for _, s := range normalizeAll(have) {
		owned[s] = struct{}{}
	}

	matched := []string{}
	seen := make(map[string]struct{}, len(required))
	for _, raw := range required {
		s := normalize(raw)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := owned[s]; ok {
			matched = append(matched, strings.TrimSpace(raw))
		}
	}
	return matched
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

// normalizeAll lower-cases and trims values, dropping empties and duplicates.
// It always returns a new slice.
func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
