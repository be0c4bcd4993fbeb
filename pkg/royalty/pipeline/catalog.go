package pipeline

import "github.com/EncoreMusictech/encore-live-sub011/pkg/models"

// Fixed uncertainty margin around the base estimate.
const (
	lowScenarioFactor  = 0.8
	highScenarioFactor = 1.2
)

// ScenarioBandsFor returns the low/base/high bands around base.
func ScenarioBandsFor(base float64) models.ScenarioBands {
	return models.ScenarioBands{
		Low:  base * lowScenarioFactor,
		Base: base,
		High: base * highScenarioFactor,
	}
}

// ComputeCatalogPipeline estimates every song and aggregates the results. An empty catalog
// yields zero totals and a confidence score of 50.
func ComputeCatalogPipeline(songs []models.SongMetaForPipeline, cfg PipelineConfig) models.CatalogPipelineResult {
	result := models.CatalogPipelineResult{
		Songs:     make([]models.SongPipelineResult, 0, len(songs)),
		SongCount: len(songs),
	}

	for _, song := range songs {
		r := ComputeSongPipeline(song, cfg)
		result.Songs = append(result.Songs, r)
		result.RawTotal += r.RawPipeline
		result.Total += r.CollectiblePipeline
		result.ByRight = result.ByRight.Add(r.ByRight)
	}

	result.Scenarios = ScenarioBandsFor(result.Total)
	result.ConfidenceScore = CatalogConfidenceScore(songs)
	return result
}
