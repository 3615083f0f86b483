package filter

import (
	"sort"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/infra/config"
)

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// NewChainFromConfig builds the chain for the configured filters.
// hidden_file_filter is enabled unless configured otherwise. The duration
// filter needs probe and is skipped when probe is nil.
func NewChainFromConfig(cfg *config.Config, probe ProbeFunc) (*Chain, error) {
	chain := NewChain()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !cfg.IsFilterEnabled(name, name == HiddenFileFilterName) {
			continue
		}
		f := registry[name]()
		if err := f.ValidateConfig(cfg.FilterSettings(name)); err != nil {
			return nil, errors.Wrapf(err, "filter %s", name)
		}
		chain.Add(f)
	}

	if cfg.IsFilterEnabled(DurationLimitFilterName, false) {
		if probe == nil {
			zlog.Warn().Msgf("filter: %s needs a decoder, skipping", DurationLimitFilterName)
		} else {
			f := NewDurationLimitFilter(probe)
			if err := f.ValidateConfig(cfg.FilterSettings(DurationLimitFilterName)); err != nil {
				return nil, errors.Wrapf(err, "filter %s", DurationLimitFilterName)
			}
			chain.Add(f)
		}
	}

	for _, f := range chain.filters {
		zlog.Debug().Msgf("filter: enabled %s", f.Name())
	}
	return chain, nil
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence.
// Returns immediately if any filter rejects the candidate.
func (c *Chain) Execute(cand Candidate) Result {
	if c == nil {
		return Accept()
	}
	for _, f := range c.filters {
		result := f.Check(cand)
		if !result.Accepted {
			return result
		}
	}
	return Accept()
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
