package validation_test

import (
	"testing"

	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateCustomTags(t *testing.T) {
	v := validation.New()

	c := domain.Candidate{
		UserID:         "u1",
		FullName:       "Ada Lovelace",
		ExperienceTier: domain.ExperienceFivePlusY,
		Role:           domain.RoleSoftwareEngineer,
	}
	require.NoError(t, v.Struct(c))

	c.ExperienceTier = "TEN_YEARS"
	c.Role = "ASTRONAUT"
	err := v.Struct(c)
	require.Error(t, err)

	msgs := validation.FormatValidationErrors(err)
	assert.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "Experience")
	assert.Contains(t, msgs[1], `unknown job role "ASTRONAUT"`)
}

func TestPreferenceLocationType(t *testing.T) {
	v := validation.New()

	p := domain.Preference{Name: "Backend", Role: domain.RoleSoftwareEngineer, MinAge: 19}
	assert.NoError(t, v.Struct(p))

	p.LocationType = domain.LocationRemote
	assert.NoError(t, v.Struct(p))

	p.LocationType = "MOON"
	err := v.Struct(p)
	require.Error(t, err)
	assert.Equal(t, "Location type: must be one of ONSITE, REMOTE, HYBRID", validation.Message(err))
}

func TestNoEmoji(t *testing.T) {
	v := validation.New()
	c := domain.Candidate{
		UserID:         "u1",
		FullName:       "Rocket \U0001F680",
		ExperienceTier: domain.ExperienceNone,
		Role:           domain.RoleOther,
	}
	err := v.Struct(c)
	require.Error(t, err)
	assert.Contains(t, validation.Message(err), "emoji")
}
