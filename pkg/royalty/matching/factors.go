package matching

import (
	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
)

const (
	akaMatchThreshold    = 0.9
	writerMatchThreshold = 0.8
)

// CalculateConfidenceFactors computes the independent match signals between a reported
// song and a catalog work. Missing ISWCs, AKAs or writers leave their factor at zero.
func CalculateConfidenceFactors(song models.SongRecord, work models.CatalogWork) models.MatchFactors {
	var f models.MatchFactors

	if title := Normalize(song.Title); title != "" {
		f.TitleSimilarity = normalizedSimilarity(title, Normalize(work.Title))
		f.AKASimilarity = f.TitleSimilarity
		for _, aka := range work.AKAs {
			f.AKASimilarity = max(f.AKASimilarity, normalizedSimilarity(title, Normalize(aka)))
		}
		f.AKAMatch = f.AKASimilarity > akaMatchThreshold
	}

	if artist := Normalize(song.Artist); artist != "" {
		for _, w := range work.Writers {
			name := Normalize(w.Name)
			if name == "" {
				continue
			}
			f.ArtistSimilarity = max(f.ArtistSimilarity, normalizedSimilarity(artist, name))
		}
	}
	f.WriterMatch = f.ArtistSimilarity > writerMatchThreshold

	f.ISWCMatch = utils.SameISWC(song.ISWC, work.ISWC)
	return f
}
