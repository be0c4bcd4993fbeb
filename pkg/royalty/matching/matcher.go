package matching

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
)

const (
	// DefaultSearchFloor keeps weak candidates visible for manual review.
	DefaultSearchFloor = 0.3
	// DefaultAutoLinkFloor is the minimum confidence for linking without review.
	DefaultAutoLinkFloor = 0.6
)

// Match scores a single song/work pair.
func Match(song models.SongRecord, work models.CatalogWork) models.MatchResult {
	factors := CalculateConfidenceFactors(song, work)
	confidence := CalculateConfidenceScore(factors)
	return models.MatchResult{
		Work:       work,
		Confidence: confidence,
		Factors:    factors,
		MatchType:  Classify(confidence),
	}
}

// FindPotentialMatches scores every candidate and returns those at or above minConfidence,
// highest first. Equal confidences keep their candidate order.
func FindPotentialMatches(song models.SongRecord, candidates []models.CatalogWork, minConfidence float64) []models.MatchResult {
	results := make([]models.MatchResult, 0)
	for _, work := range candidates {
		m := Match(song, work)
		if m.Confidence < minConfidence {
			continue
		}
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}

// GetBestMatch returns the top-ranked candidate at or above minConfidence.
func GetBestMatch(song models.SongRecord, candidates []models.CatalogWork, minConfidence float64) (models.MatchResult, bool) {
	matches := FindPotentialMatches(song, candidates, minConfidence)
	if len(matches) == 0 {
		return models.MatchResult{}, false
	}
	return matches[0], true
}

// BatchKey identifies a reported song in batch results: normalized "title-artist".
func BatchKey(song models.SongRecord) string {
	return Normalize(song.Title) + "-" + Normalize(song.Artist)
}

// BatchMatchSongs finds the best match for each song. Songs without a match above
// minConfidence map to nil. When two songs share a key the later one wins.
func BatchMatchSongs(songs []models.SongRecord, candidates []models.CatalogWork, minConfidence float64) map[string]*models.MatchResult {
	results, _ := BatchMatchSongsContext(context.Background(), songs, candidates, minConfidence)
	return results
}

// BatchMatchSongsContext is BatchMatchSongs with cancellation between songs.
func BatchMatchSongsContext(ctx context.Context, songs []models.SongRecord, candidates []models.CatalogWork, minConfidence float64) (map[string]*models.MatchResult, error) {
	best := make([]*models.MatchResult, len(songs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range songs {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if m, ok := GetBestMatch(songs[i], candidates, minConfidence); ok {
				best[i] = &m
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string]*models.MatchResult, len(songs))
	for i, song := range songs {
		results[BatchKey(song)] = best[i]
	}
	return results, nil
}
