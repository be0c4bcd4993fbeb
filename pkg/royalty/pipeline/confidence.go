package pipeline

import (
	"math"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
)

const (
	highConfidenceCompleteness   = 0.75
	mediumConfidenceCompleteness = 0.6
)

// ConfidenceFromSong rates how reliable a song's estimate is. It describes the estimate,
// not expected leakage, and is independent of CollectabilityFactor.
func ConfidenceFromSong(song models.SongMetaForPipeline) models.ConfidenceTier {
	switch {
	case song.VerificationStatus.IsVerified() && song.Completeness >= highConfidenceCompleteness:
		return models.ConfidenceHigh
	case song.Completeness >= mediumConfidenceCompleteness:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Catalog confidence score components (0-100 scale).
const (
	baseCatalogScore      = 50
	completenessPoints    = 20
	maxDepthPoints        = 10
	songsPerDepthPoint    = 10
	anyVerifiedPoints     = 10
	anyISWCPoints         = 8
	anyWriterSplitsPoints = 8
)

// CatalogConfidenceScore rates a whole catalog estimate from 0 to 100. An empty catalog
// scores exactly the base of 50.
func CatalogConfidenceScore(songs []models.SongMetaForPipeline) int {
	score := baseCatalogScore
	if len(songs) == 0 {
		return score
	}

	var completeness float64
	var anyVerified, anyISWC, anySplits bool
	for _, s := range songs {
		completeness += s.Completeness
		anyVerified = anyVerified || s.VerificationStatus.IsVerified()
		anyISWC = anyISWC || utils.NormalizeISWC(s.ISWC) != ""
		anySplits = anySplits || len(s.WriterSplits) > 0
	}

	score += int(math.Round(completeness / float64(len(songs)) * completenessPoints))
	score += min(maxDepthPoints, len(songs)/songsPerDepthPoint)
	if anyVerified {
		score += anyVerifiedPoints
	}
	if anyISWC {
		score += anyISWCPoints
	}
	if anySplits {
		score += anyWriterSplitsPoints
	}

	return max(0, min(100, score))
}
