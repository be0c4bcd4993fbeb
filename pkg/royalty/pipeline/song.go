package pipeline

import (
	"math"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
)

// Decay adjustments applied to Decay.BaseK.
const (
	verifiedDecayAdjust         = -0.02
	noISWCDecayAdjust           = 0.04
	lowCompletenessDecayAdjust  = 0.03
	lowCompletenessDecayCeiling = 0.6
)

// DecayConstant returns the per-song decay rate, clamped to [MinK, MaxK].
func DecayConstant(song models.SongMetaForPipeline, decay Decay) float64 {
	k := decay.BaseK
	if song.VerificationStatus.IsVerified() {
		k += verifiedDecayAdjust
	}
	if utils.NormalizeISWC(song.ISWC) == "" {
		k += noISWCDecayAdjust
	}
	if song.Completeness < lowCompletenessDecayCeiling {
		k += lowCompletenessDecayAdjust
	}
	return clamp(k, decay.MinK, decay.MaxK)
}

// MonthlyNetBaseline converts an annual gross estimate to net monthly publishing revenue.
func MonthlyNetBaseline(annualGross float64, cfg PipelineConfig) float64 {
	return annualGross / 12 * (1 - cfg.PlatformFee) * cfg.PublishingShare
}

// ComputeSongPipeline estimates the uncollected pipeline for one work.
func ComputeSongPipeline(song models.SongMetaForPipeline, cfg PipelineConfig) models.SongPipelineResult {
	verified := song.VerificationStatus.IsVerified()
	gross := EstimateAnnualGrossFromCompleteness(song.Completeness, verified)
	r0 := MonthlyNetBaseline(gross, cfg)
	k := DecayConstant(song, cfg.Decay)

	domestic := territoryPipeline(r0, k, cfg.Territories.Domestic)
	international := territoryPipeline(r0, k, cfg.Territories.International)
	raw := domestic + international

	collectability := CollectabilityFactor(song)
	collectible := raw * collectability

	return models.SongPipelineResult{
		WorkID:                song.WorkID,
		Title:                 song.Title,
		AnnualGrossEstimate:   gross,
		MonthlyNetBaseline:    r0,
		DecayK:                k,
		DomesticPipeline:      domestic,
		InternationalPipeline: international,
		RawPipeline:           raw,
		Collectability:        collectability,
		CollectiblePipeline:   collectible,
		ByRight:               splitByRight(collectible, cfg.RightWeights),
		Confidence:            ConfidenceFromSong(song),
	}
}

// territoryPipeline sums decayed monthly revenue across the territory's lag window,
// weighted by its revenue share. Month 0 is the current, undecayed month.
func territoryPipeline(r0, k float64, t Territory) float64 {
	var sum float64
	for m := 0; m < t.LagMonths; m++ {
		sum += r0 * math.Exp(-k*float64(m))
	}
	return t.Weight * sum
}

// splitByRight does not renormalize: weights that do not sum to 1 are the caller's problem.
func splitByRight(v float64, w RightWeights) models.RightTypeBreakdown {
	return models.RightTypeBreakdown{
		Performance: v * w.Performance,
		Mechanical:  v * w.Mechanical,
		Sync:        v * w.Sync,
	}
}
