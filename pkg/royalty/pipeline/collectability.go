package pipeline

import (
	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
)

// Leakage multipliers for missing metadata.
const (
	noRegistrationFactor    = 0.7
	noISWCFactor            = 0.8
	noSplitsFactor          = 0.85
	noPublisherFactor       = 0.9
	verifiedBonus           = 1.1
	unconfirmedNoISWCFactor = 0.8
)

// CollectabilityFactor estimates the fraction of owed royalties that will actually be
// collected given the work's registration gaps. The result is in [0,1].
//
// A verified status is itself evidence of a PRO registration and of the registered
// writer splits, so those two penalties only apply to unverified works.
func CollectabilityFactor(song models.SongMetaForPipeline) float64 {
	verified := song.VerificationStatus.IsVerified()
	hasISWC := utils.NormalizeISWC(song.ISWC) != ""

	factor := 1.0
	if !verified && len(song.Registrations) == 0 {
		factor *= noRegistrationFactor
	}
	if !hasISWC {
		factor *= noISWCFactor
	}
	if !verified && len(song.WriterSplits) == 0 {
		factor *= noSplitsFactor
	}
	if len(song.PublisherSplits) == 0 {
		factor *= noPublisherFactor
	}

	if verified {
		factor = min(factor*verifiedBonus, 1)
	}
	// Unconfirmed works without an ISWC leak twice: nobody can route the income to them.
	if song.VerificationStatus.IsUnconfirmed() && !hasISWC {
		factor *= unconfirmedNoISWCFactor
	}

	return clamp(factor, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
