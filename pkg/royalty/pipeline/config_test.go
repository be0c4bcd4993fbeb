package pipeline

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PlatformFee != 0.15 {
		t.Errorf("Expected platform fee 0.15, got %v", cfg.PlatformFee)
	}
	if cfg.PublishingShare != 0.5 {
		t.Errorf("Expected publishing share 0.5, got %v", cfg.PublishingShare)
	}
	if cfg.Territories.Domestic.LagMonths != 9 || cfg.Territories.International.LagMonths != 18 {
		t.Errorf("Expected lags 9/18, got %d/%d", cfg.Territories.Domestic.LagMonths, cfg.Territories.International.LagMonths)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithPlatformFee(0.2),
		WithPublishingShare(0.75),
		WithDecay(0.01, 0.05, 0.2),
	)

	if cfg.PlatformFee != 0.2 {
		t.Errorf("Expected platform fee 0.2, got %v", cfg.PlatformFee)
	}
	if cfg.PublishingShare != 0.75 {
		t.Errorf("Expected publishing share 0.75, got %v", cfg.PublishingShare)
	}
	if cfg.Decay != (Decay{MinK: 0.01, BaseK: 0.05, MaxK: 0.2}) {
		t.Errorf("Unexpected decay %+v", cfg.Decay)
	}
	if cfg.RightWeights != DefaultConfig().RightWeights {
		t.Errorf("Expected untouched right weights, got %+v", cfg.RightWeights)
	}
}

func TestNewConfigDoesNotShareState(t *testing.T) {
	a := NewConfig(WithPlatformFee(0.3))
	b := NewConfig()

	if b.PlatformFee != defaultPlatformFee {
		t.Errorf("Expected fresh default config, got fee %v after %v", b.PlatformFee, a.PlatformFee)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr string
	}{
		{
			name:    "fee out of range",
			opts:    []ConfigOption{WithPlatformFee(1.5)},
			wantErr: "platform_fee",
		},
		{
			name:    "negative share",
			opts:    []ConfigOption{WithPublishingShare(-0.1)},
			wantErr: "publishing_share",
		},
		{
			name: "territories do not sum to one",
			opts: []ConfigOption{WithTerritories(
				Territory{Weight: 0.5, LagMonths: 9},
				Territory{Weight: 0.4, LagMonths: 18},
			)},
			wantErr: "territory weights must sum to 1",
		},
		{
			name: "negative lag",
			opts: []ConfigOption{WithTerritories(
				Territory{Weight: 0.6, LagMonths: -1},
				Territory{Weight: 0.4, LagMonths: 18},
			)},
			wantErr: "lag_months",
		},
		{
			name:    "inverted decay bounds",
			opts:    []ConfigOption{WithDecay(0.2, 0.1, 0.05)},
			wantErr: "min_k",
		},
		{
			name:    "base outside bounds",
			opts:    []ConfigOption{WithDecay(0.02, 0.3, 0.15)},
			wantErr: "base_k",
		},
		{
			name:    "right weights do not sum to one",
			opts:    []ConfigOption{WithRightWeights(0.5, 0.5, 0.5)},
			wantErr: "right weights must sum to 1",
		},
		{
			name:    "negative right weight",
			opts:    []ConfigOption{WithRightWeights(1.2, -0.2, 0)},
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	err := NewConfig(WithPlatformFee(2), WithPublishingShare(2)).Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "platform_fee") || !strings.Contains(msg, "publishing_share") {
		t.Errorf("Expected both problems reported, got %q", msg)
	}
}

func TestValidateTolerance(t *testing.T) {
	cfg := NewConfig(WithRightWeights(0.1, 0.2, 0.7))
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected float rounding to be tolerated, got %v", err)
	}
}
