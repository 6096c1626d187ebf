package chaos

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProfilesSorted(t *testing.T) {
	profiles := ListProfiles()
	require.NotEmpty(t, profiles)

	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	assert.True(t, sort.StringsAreSorted(names), "profiles not sorted: %v", names)
	assert.Equal(t, names, ProfileNames())
}

func TestGetProfile(t *testing.T) {
	p, ok := GetProfile("flaky")
	require.True(t, ok)
	assert.Equal(t, "flaky", p.Name)
	assert.NotEmpty(t, p.Description)

	_, ok = GetProfile("no-such-profile")
	assert.False(t, ok)
}

func TestGetProfileReturnsCopy(t *testing.T) {
	p, ok := GetProfile("flaky")
	require.True(t, ok)
	require.NotEmpty(t, p.Options.ErrorCodes)

	p.Options.ErrorCodes[0] = 418

	fresh, _ := GetProfile("flaky")
	assert.NotEqual(t, 418, fresh.Options.ErrorCodes[0], "mutating a returned profile leaked into the registry")
}

func TestAllProfilesResolve(t *testing.T) {
	for _, p := range ListProfiles() {
		_, err := Resolve(p.Options)
		assert.NoError(t, err, "profile %q does not resolve", p.Name)
	}
}
