package chaos

import "sort"

// Profile is a ready-made option set users can apply by name instead of
// tuning individual fields.
type Profile struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Options     Options `json:"options"`
}

var builtinProfiles = map[string]Profile{
	"mild": {
		Name:        "mild",
		Description: "Occasional chaos at low probability",
		Options:     Options{Intensity: IntensityMild},
	},
	"wild": {
		Name:        "wild",
		Description: "Frequent chaos for resilience drills",
		Options:     Options{Intensity: IntensityWild},
	},
	"extreme": {
		Name:        "extreme",
		Description: "Chaos on most requests",
		Options:     Options{Intensity: IntensityExtreme},
	},
	"slow-api": {
		Name:        "slow-api",
		Description: "Simulates a slow upstream API",
		Options: Options{
			Probability: prob(1.0),
			DelayMin:    "500ms",
			DelayMax:    "2s",
		},
	},
	"degraded": {
		Name:        "degraded",
		Description: "Partially degraded service",
		Options: Options{
			Probability: prob(0.15),
			DelayMin:    "200ms",
			DelayMax:    "800ms",
			ErrorCodes:  []int{503},
		},
	},
	"flaky": {
		Name:        "flaky",
		Description: "Unreliable service with random errors",
		Options: Options{
			Intensity:  IntensityWild,
			DelayMin:   "0ms",
			DelayMax:   "100ms",
			ErrorCodes: []int{500, 502, 503},
		},
	},
	"offline": {
		Name:        "offline",
		Description: "Service effectively down",
		Options: Options{
			Probability: prob(1.0),
			ErrorCodes:  []int{503},
		},
	},
	"rate-limited": {
		Name:        "rate-limited",
		Description: "Aggressive rate limiting",
		Options: Options{
			Probability: prob(0.30),
			DelayMin:    "50ms",
			DelayMax:    "200ms",
			ErrorCodes:  []int{429},
		},
	},
}

func prob(p float64) *float64 {
	return &p
}

// ListProfiles returns all built-in profiles sorted by name.
func ListProfiles() []Profile {
	profiles := make([]Profile, 0, len(builtinProfiles))
	for _, p := range builtinProfiles {
		profiles = append(profiles, copyProfile(p))
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// GetProfile returns a built-in profile by name.
func GetProfile(name string) (Profile, bool) {
	p, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, false
	}
	return copyProfile(p), true
}

// ProfileNames returns the names of all built-in profiles sorted
// alphabetically.
func ProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// copyProfile deep-copies a profile so callers cannot mutate the
// built-in registry.
func copyProfile(p Profile) Profile {
	out := p
	if p.Options.Probability != nil {
		v := *p.Options.Probability
		out.Options.Probability = &v
	}
	out.Options.ErrorCodes = append([]int(nil), p.Options.ErrorCodes...)
	out.Options.EnabledRoutes = append([]string(nil), p.Options.EnabledRoutes...)
	out.Options.DisabledRoutes = append([]string(nil), p.Options.DisabledRoutes...)
	return out
}
