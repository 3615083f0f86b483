package filter

import (
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

const DurationLimitFilterName = "duration_limit_filter"

// ProbeFunc returns the playing time of an audio file.
type ProbeFunc func(path string) (time.Duration, error)

// DurationLimitConfig represents the configuration for DurationLimitFilter.
type DurationLimitConfig struct {
	MinSeconds float64 `yaml:"min_seconds" mapstructure:"min_seconds" validate:"gte=0"`
	MaxSeconds float64 `yaml:"max_seconds" mapstructure:"max_seconds" validate:"gte=0"` // 0 means no limit
}

// DurationLimitFilter checks if track duration is within allowed limits.
// Files that cannot be decoded are rejected.
type DurationLimitFilter struct {
	probe  ProbeFunc
	config *DurationLimitConfig
}

// NewDurationLimitFilter creates a new duration limit filter.
func NewDurationLimitFilter(probe ProbeFunc) *DurationLimitFilter {
	return &DurationLimitFilter{probe: probe}
}

func (f *DurationLimitFilter) Name() string {
	return DurationLimitFilterName
}

func (f *DurationLimitFilter) Description() string {
	return "Skips tracks that are too short or too long, or cannot be decoded"
}

func (f *DurationLimitFilter) ReturnCodes() []string {
	return []string{"too_short", "too_long", "undecodable"}
}

func (f *DurationLimitFilter) ValidateConfig(settings map[string]any) error {
	var config DurationLimitConfig
	if err := decodeSettings(settings, &config); err != nil {
		return err
	}
	if config.MaxSeconds > 0 && config.MinSeconds > config.MaxSeconds {
		return errors.New("min_seconds cannot be greater than max_seconds")
	}
	f.config = &config
	zlog.Debug().Msgf("duration limit filter config: %+v", config)
	return nil
}

func (f *DurationLimitFilter) Check(c Candidate) Result {
	if f.config == nil || f.probe == nil {
		return Accept()
	}

	length, err := f.probe(c.Track.Path)
	if err != nil {
		zlog.Warn().Err(err).Msgf("filter: cannot probe %s", c.Track.Name)
		return Reject("undecodable")
	}

	seconds := length.Seconds()
	if seconds < f.config.MinSeconds {
		return Reject("too_short")
	}
	if f.config.MaxSeconds > 0 && seconds > f.config.MaxSeconds {
		return Reject("too_long")
	}
	return Accept()
}
