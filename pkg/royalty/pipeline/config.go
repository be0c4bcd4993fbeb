// Package pipeline estimates uncollected royalty pipeline value for songs and catalogs.
//
// The estimate is a deterministic heuristic: every assumption lives either in a lookup
// table in this package or in a PipelineConfig, so results are reproducible and auditable.
// Nothing here performs I/O.
package pipeline

import (
	"errors"
	"fmt"
	"math"
)

// Territory describes one collection territory.
type Territory struct {
	// Weight is this territory's share of revenue; territories sum to 1.
	Weight float64 `toml:"weight" yaml:"weight" json:"weight"`
	// LagMonths is how long revenue waits before it is collected.
	LagMonths int `toml:"lag_months" yaml:"lag_months" json:"lag_months"`
}

// Territories holds the domestic/international revenue split.
type Territories struct {
	Domestic      Territory `toml:"domestic" yaml:"domestic" json:"domestic"`
	International Territory `toml:"international" yaml:"international" json:"international"`
}

// Decay bounds the per-song exponential decay constant.
type Decay struct {
	MinK  float64 `toml:"min_k" yaml:"min_k" json:"min_k"`
	BaseK float64 `toml:"base_k" yaml:"base_k" json:"base_k"`
	MaxK  float64 `toml:"max_k" yaml:"max_k" json:"max_k"`
}

// RightWeights splits collectible pipeline across right types. Weights sum to 1.
type RightWeights struct {
	Performance float64 `toml:"performance" yaml:"performance" json:"performance"`
	Mechanical  float64 `toml:"mechanical" yaml:"mechanical" json:"mechanical"`
	Sync        float64 `toml:"sync" yaml:"sync" json:"sync"`
}

// PipelineConfig tunes the valuation engine. It is passed by value and never mutated
// during a computation.
type PipelineConfig struct {
	PlatformFee     float64      `toml:"platform_fee" yaml:"platform_fee" json:"platform_fee"`
	PublishingShare float64      `toml:"publishing_share" yaml:"publishing_share" json:"publishing_share"`
	Territories     Territories  `toml:"territories" yaml:"territories" json:"territories"`
	Decay           Decay        `toml:"decay" yaml:"decay" json:"decay"`
	RightWeights    RightWeights `toml:"right_weights" yaml:"right_weights" json:"right_weights"`
}

const (
	defaultPlatformFee         = 0.15
	defaultPublishingShare     = 0.5
	defaultDomesticWeight      = 0.6
	defaultDomesticLag         = 9
	defaultInternationalWeight = 0.4
	defaultInternationalLag    = 18
	defaultMinK                = 0.02
	defaultBaseK               = 0.06
	defaultMaxK                = 0.15
	defaultPerformanceWeight   = 0.5
	defaultMechanicalWeight    = 0.35
	defaultSyncWeight          = 0.15
)

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		PlatformFee:     defaultPlatformFee,
		PublishingShare: defaultPublishingShare,
		Territories: Territories{
			Domestic:      Territory{Weight: defaultDomesticWeight, LagMonths: defaultDomesticLag},
			International: Territory{Weight: defaultInternationalWeight, LagMonths: defaultInternationalLag},
		},
		Decay: Decay{MinK: defaultMinK, BaseK: defaultBaseK, MaxK: defaultMaxK},
		RightWeights: RightWeights{
			Performance: defaultPerformanceWeight,
			Mechanical:  defaultMechanicalWeight,
			Sync:        defaultSyncWeight,
		},
	}
}

// ConfigOption overrides part of a PipelineConfig.
type ConfigOption func(*PipelineConfig)

func WithPlatformFee(fee float64) ConfigOption {
	return func(c *PipelineConfig) {
		c.PlatformFee = fee
	}
}

func WithPublishingShare(share float64) ConfigOption {
	return func(c *PipelineConfig) {
		c.PublishingShare = share
	}
}

func WithTerritories(domestic, international Territory) ConfigOption {
	return func(c *PipelineConfig) {
		c.Territories = Territories{Domestic: domestic, International: international}
	}
}

func WithDecay(minK, baseK, maxK float64) ConfigOption {
	return func(c *PipelineConfig) {
		c.Decay = Decay{MinK: minK, BaseK: baseK, MaxK: maxK}
	}
}

func WithRightWeights(performance, mechanical, sync float64) ConfigOption {
	return func(c *PipelineConfig) {
		c.RightWeights = RightWeights{Performance: performance, Mechanical: mechanical, Sync: sync}
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...ConfigOption) PipelineConfig {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

const weightTolerance = 1e-6

// Validate reports configuration mistakes. The engine itself computes with whatever it is
// given; callers that accept user-supplied configs should call this first.
func (c PipelineConfig) Validate() error {
	var errs []error

	if c.PlatformFee < 0 || c.PlatformFee > 1 {
		errs = append(errs, errors.New("platform_fee must be between 0 and 1"))
	}
	if c.PublishingShare < 0 || c.PublishingShare > 1 {
		errs = append(errs, errors.New("publishing_share must be between 0 and 1"))
	}

	t := c.Territories
	if t.Domestic.Weight < 0 || t.International.Weight < 0 {
		errs = append(errs, errors.New("territory weights must not be negative"))
	}
	if sum := t.Domestic.Weight + t.International.Weight; math.Abs(sum-1) > weightTolerance {
		errs = append(errs, fmt.Errorf("territory weights must sum to 1, got %g", sum))
	}
	if t.Domestic.LagMonths < 0 || t.International.LagMonths < 0 {
		errs = append(errs, errors.New("territory lag_months must not be negative"))
	}

	d := c.Decay
	if d.MinK < 0 {
		errs = append(errs, errors.New("decay.min_k must not be negative"))
	}
	if d.MinK > d.MaxK {
		errs = append(errs, fmt.Errorf("decay.min_k (%g) must not exceed decay.max_k (%g)", d.MinK, d.MaxK))
	}
	if d.BaseK < d.MinK || d.BaseK > d.MaxK {
		errs = append(errs, fmt.Errorf("decay.base_k (%g) must lie within [min_k, max_k]", d.BaseK))
	}

	r := c.RightWeights
	if r.Performance < 0 || r.Mechanical < 0 || r.Sync < 0 {
		errs = append(errs, errors.New("right weights must not be negative"))
	}
	if sum := r.Performance + r.Mechanical + r.Sync; math.Abs(sum-1) > weightTolerance {
		errs = append(errs, fmt.Errorf("right weights must sum to 1, got %g", sum))
	}

	return errors.Join(errs...)
}
