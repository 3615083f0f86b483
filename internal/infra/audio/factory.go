package audio

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/app/playback"
	"github.com/osa030/dirbox/internal/infra/config"
)

// Engine types accepted in configuration.
const (
	TypeSpeaker = "speaker"
	TypeSilent  = "silent"
)

// Settings holds engine settings decoded from the configuration map.
type Settings struct {
	SampleRate      int `yaml:"sample_rate" mapstructure:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs        int `yaml:"buffer_ms" mapstructure:"buffer_ms" default:"100" validate:"gte=10,lte=1000"`
	ResampleQuality int `yaml:"resample_quality" mapstructure:"resample_quality" default:"4" validate:"gte=1,lte=64"`
}

// DecodeSettings decodes, defaults and validates engine settings.
func DecodeSettings(settings map[string]any) (Settings, error) {
	var s Settings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return Settings{}, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&s); err != nil {
		return Settings{}, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(s); err != nil {
		return Settings{}, errors.Wrap(err, "validation failed")
	}
	return s, nil
}

// NewEngine creates the engine selected by the configuration.
func NewEngine(cfg config.EngineConfig) (playback.Engine, error) {
	settings, err := DecodeSettings(cfg.Settings)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid settings for engine %s", cfg.Type)
	}
	zlog.Debug().Msgf("creating audio engine: type=%s settings=%+v", cfg.Type, settings)

	switch cfg.Type {
	case TypeSpeaker, "":
		return NewSpeakerEngine(settings), nil
	case TypeSilent:
		return NewSilentEngine(time.Now), nil
	default:
		return nil, errors.Newf("unsupported engine type: %s", cfg.Type)
	}
}
