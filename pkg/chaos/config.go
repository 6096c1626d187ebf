package chaos

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfiguration is returned by Resolve (and therefore New) when
// the supplied options cannot form a valid engine configuration. It is
// never returned per-request.
var ErrInvalidConfiguration = errors.New("invalid chaos configuration")

// Intensity is a named preset mapping to a default chaos probability.
type Intensity string

// Built-in intensity presets.
const (
	IntensityMild    Intensity = "mild"
	IntensityWild    Intensity = "wild"
	IntensityExtreme Intensity = "extreme"
)

var presetProbability = map[Intensity]float64{
	IntensityMild:    0.10,
	IntensityWild:    0.30,
	IntensityExtreme: 0.70,
}

// ParseIntensity parses an intensity preset name.
func ParseIntensity(s string) (Intensity, error) {
	in := Intensity(strings.ToLower(s))
	if _, ok := presetProbability[in]; !ok {
		return "", fmt.Errorf("%w: unknown intensity %q", ErrInvalidConfiguration, s)
	}
	return in, nil
}

// Defaults applied when options leave the delay range unset.
const (
	DefaultDelayMin = 100 * time.Millisecond
	DefaultDelayMax = 3 * time.Second
)

// DefaultErrorCodes returns the status codes used for error injection
// when none are configured.
func DefaultErrorCodes() []int {
	return []int{500, 502, 503, 429}
}

// Options is the user-facing, possibly partial configuration. Durations
// are strings in time.ParseDuration format (e.g. "250ms"). Explicit
// fields override the intensity preset field-by-field; unset fields
// inherit defaults.
type Options struct {
	Intensity      Intensity `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Probability    *float64  `json:"probability,omitempty" yaml:"probability,omitempty"`
	DelayMin       string    `json:"delayMin,omitempty" yaml:"delayMin,omitempty"`
	DelayMax       string    `json:"delayMax,omitempty" yaml:"delayMax,omitempty"`
	ErrorCodes     []int     `json:"errorCodes,omitempty" yaml:"errorCodes,omitempty"`
	EnabledRoutes  []string  `json:"enabledRoutes,omitempty" yaml:"enabledRoutes,omitempty"`
	DisabledRoutes []string  `json:"disabledRoutes,omitempty" yaml:"disabledRoutes,omitempty"`
	LoggingEnabled bool      `json:"loggingEnabled,omitempty" yaml:"loggingEnabled,omitempty"`
}

// Config is the resolved canonical configuration. It is immutable after
// construction; changing chaos behavior means building a new engine.
type Config struct {
	Probability    float64       `json:"probability"`
	DelayMin       time.Duration `json:"delayMin"`
	DelayMax       time.Duration `json:"delayMax"`
	ErrorCodes     []int         `json:"errorCodes"`
	EnabledRoutes  []string      `json:"enabledRoutes,omitempty"`
	DisabledRoutes []string      `json:"disabledRoutes,omitempty"`
	LoggingEnabled bool          `json:"loggingEnabled"`
}

// Resolve normalizes Options into a canonical Config. An explicit
// probability wins over the intensity preset; with neither set the mild
// preset applies.
func Resolve(opts Options) (Config, error) {
	var cfg Config

	switch {
	case opts.Probability != nil:
		cfg.Probability = *opts.Probability
	case opts.Intensity != "":
		in, err := ParseIntensity(string(opts.Intensity))
		if err != nil {
			return Config{}, err
		}
		cfg.Probability = presetProbability[in]
	default:
		cfg.Probability = presetProbability[IntensityMild]
	}
	if cfg.Probability < 0 || cfg.Probability > 1 {
		return Config{}, fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidConfiguration, cfg.Probability)
	}

	var err error
	if cfg.DelayMin, err = resolveDuration(opts.DelayMin, DefaultDelayMin); err != nil {
		return Config{}, fmt.Errorf("%w: delayMin: %v", ErrInvalidConfiguration, err)
	}
	if cfg.DelayMax, err = resolveDuration(opts.DelayMax, DefaultDelayMax); err != nil {
		return Config{}, fmt.Errorf("%w: delayMax: %v", ErrInvalidConfiguration, err)
	}
	if cfg.DelayMin < 0 {
		return Config{}, fmt.Errorf("%w: delayMin %v is negative", ErrInvalidConfiguration, cfg.DelayMin)
	}
	if cfg.DelayMin > cfg.DelayMax {
		return Config{}, fmt.Errorf("%w: delay range inverted (%v > %v)", ErrInvalidConfiguration, cfg.DelayMin, cfg.DelayMax)
	}

	if opts.ErrorCodes == nil {
		cfg.ErrorCodes = DefaultErrorCodes()
	} else {
		if len(opts.ErrorCodes) == 0 {
			return Config{}, fmt.Errorf("%w: errorCodes is empty", ErrInvalidConfiguration)
		}
		cfg.ErrorCodes = make([]int, len(opts.ErrorCodes))
		copy(cfg.ErrorCodes, opts.ErrorCodes)
		for _, code := range cfg.ErrorCodes {
			if code < 100 || code > 599 {
				return Config{}, fmt.Errorf("%w: %d is not an HTTP status code", ErrInvalidConfiguration, code)
			}
		}
	}

	cfg.EnabledRoutes = append([]string(nil), opts.EnabledRoutes...)
	cfg.DisabledRoutes = append([]string(nil), opts.DisabledRoutes...)
	cfg.LoggingEnabled = opts.LoggingEnabled

	return cfg, nil
}

func resolveDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// Eligible reports whether the route filter allows chaos for a path.
// Matching is plain case-sensitive prefix comparison; a disabled prefix
// always overrides an overlapping enabled prefix. An empty enabled list
// means all routes.
func (c Config) Eligible(path string) bool {
	for _, prefix := range c.DisabledRoutes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	if len(c.EnabledRoutes) == 0 {
		return true
	}
	for _, prefix := range c.EnabledRoutes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
