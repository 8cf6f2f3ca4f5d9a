// Package scorer computes the per-lead score components and combines them
// into tiered priority scores.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Config holds the scoring weights and thresholds. The shipped defaults are
// contractual: exports are compared bit-for-bit against them.
type Config struct {
	// Enhanced-score component weights (sum = 1).
	IntentWeight    float64 `yaml:"intent_weight" mapstructure:"intent_weight"`
	FreshnessWeight float64 `yaml:"freshness_weight" mapstructure:"freshness_weight"`
	SizeWeight      float64 `yaml:"size_weight" mapstructure:"size_weight"`
	ProximityWeight float64 `yaml:"proximity_weight" mapstructure:"proximity_weight"`

	// Final blend (sum = 1).
	LegacyBlend   float64 `yaml:"legacy_blend" mapstructure:"legacy_blend"`
	EnhancedBlend float64 `yaml:"enhanced_blend" mapstructure:"enhanced_blend"`

	// Urgency flag.
	UrgencyScore  float64 `yaml:"urgency_score" mapstructure:"urgency_score"`
	UrgencyIntent float64 `yaml:"urgency_intent" mapstructure:"urgency_intent"`

	// Tier ladder minimums, evaluated top-down.
	Tier1Min float64 `yaml:"tier1_min" mapstructure:"tier1_min"`
	Tier2Min float64 `yaml:"tier2_min" mapstructure:"tier2_min"`
	Tier3Min float64 `yaml:"tier3_min" mapstructure:"tier3_min"`

	// Statuses that qualify a lead for Tier 1 (substring, case-insensitive).
	ActiveReviewStatuses []string `yaml:"active_review_statuses" mapstructure:"active_review_statuses"`
}

// DefaultConfig returns the canonical weight table.
func DefaultConfig() Config {
	return Config{
		IntentWeight:    0.4,
		FreshnessWeight: 0.3,
		SizeWeight:      0.2,
		ProximityWeight: 0.1,

		LegacyBlend:   0.3,
		EnhancedBlend: 0.7,

		UrgencyScore:  70,
		UrgencyIntent: 0.9,

		Tier1Min: 70,
		Tier2Min: 55,
		Tier3Min: 40,

		ActiveReviewStatuses: []string{"Under Verification", "Under Examination"},
	}
}

// Validate checks that a Config is internally consistent.
func Validate(c Config) error {
	var errs []string

	components := map[string]float64{
		"intent_weight":    c.IntentWeight,
		"freshness_weight": c.FreshnessWeight,
		"size_weight":      c.SizeWeight,
		"proximity_weight": c.ProximityWeight,
	}
	sum := 0.0
	for name, w := range components {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
		sum += w
	}
	if math.Abs(sum-1) > 0.001 {
		errs = append(errs, fmt.Sprintf("component weights must sum to 1, got %.3f", sum))
	}

	if math.Abs(c.LegacyBlend+c.EnhancedBlend-1) > 0.001 {
		errs = append(errs, "legacy_blend + enhanced_blend must equal 1")
	}

	if c.Tier1Min < c.Tier2Min || c.Tier2Min < c.Tier3Min {
		errs = append(errs, "tier minimums must be non-increasing down the ladder")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
