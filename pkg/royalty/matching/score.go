package matching

import (
	"math"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
)

// Fusion weights. Title is the strongest discriminator; exact identifiers are additive
// so they can carry a match whose text has drifted between releases.
const (
	titleWeight  = 0.4
	artistWeight = 0.25
	iswcBoost    = 0.2
	akaBoost     = 0.1
	writerBoost  = 0.05
)

// Tier floors.
const (
	exactThreshold  = 0.95
	highThreshold   = 0.80
	mediumThreshold = 0.60
)

// CalculateConfidenceScore fuses match factors into a single confidence in [0,1].
func CalculateConfidenceScore(f models.MatchFactors) float64 {
	score := titleWeight*unit(f.TitleSimilarity) + artistWeight*unit(f.ArtistSimilarity)
	if f.ISWCMatch {
		score += iswcBoost
	}
	if f.AKAMatch {
		score += akaBoost
	}
	if f.WriterMatch {
		score += writerBoost
	}
	return unit(score)
}

// Classify maps a confidence to its match tier.
func Classify(confidence float64) models.MatchType {
	switch {
	case confidence >= exactThreshold:
		return models.MatchExact
	case confidence >= highThreshold:
		return models.MatchHigh
	case confidence >= mediumThreshold:
		return models.MatchMedium
	default:
		return models.MatchLow
	}
}

func unit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
