package filter

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

const SizeLimitFilterName = "size_limit_filter"

// SizeLimitConfig represents the configuration for SizeLimitFilter.
type SizeLimitConfig struct {
	MinKB int64 `yaml:"min_kb" mapstructure:"min_kb" default:"1" validate:"gte=0"`
	MaxMB int64 `yaml:"max_mb" mapstructure:"max_mb" validate:"gte=0"` // 0 means no limit
}

// SizeLimitFilter rejects files outside the configured size range.
type SizeLimitFilter struct {
	config *SizeLimitConfig
}

func (f *SizeLimitFilter) Name() string {
	return SizeLimitFilterName
}

func (f *SizeLimitFilter) Description() string {
	return "Skips files that are too small or too large to be a track"
}

func (f *SizeLimitFilter) ReturnCodes() []string {
	return []string{"too_small", "too_large"}
}

func (f *SizeLimitFilter) ValidateConfig(settings map[string]any) error {
	var config SizeLimitConfig
	if err := decodeSettings(settings, &config); err != nil {
		return err
	}
	if config.MaxMB > 0 && config.MinKB > config.MaxMB*1024 {
		return errors.New("min_kb cannot be greater than max_mb")
	}
	f.config = &config
	zlog.Debug().Msgf("size limit filter config: %+v", config)
	return nil
}

func (f *SizeLimitFilter) Check(c Candidate) Result {
	// If config is not set, accept all files
	if f.config == nil {
		return Accept()
	}

	if c.Size < f.config.MinKB*1024 {
		return Reject("too_small")
	}
	if f.config.MaxMB > 0 && c.Size > f.config.MaxMB*1024*1024 {
		return Reject("too_large")
	}
	return Accept()
}

func init() {
	Register(SizeLimitFilterName, func() Filter {
		return &SizeLimitFilter{}
	})
}
