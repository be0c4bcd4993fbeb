package models

// SongRecord is a song as reported by an external statement or import.
type SongRecord struct {
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	ISWC        string   `json:"iswc,omitempty"`
	GrossAmount *float64 `json:"gross_amount,omitempty"`
}

// WriterCredit is one credited writer on a catalog work.
type WriterCredit struct {
	Name                string  `json:"name"`
	OwnershipPercentage float64 `json:"ownership_percentage"`
	Role                string  `json:"role,omitempty"`
}

// CatalogWork is a registered work in the internal catalog.
type CatalogWork struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	ISWC    string         `json:"iswc,omitempty"`
	AKAs    []string       `json:"akas,omitempty"`
	Writers []WriterCredit `json:"writers,omitempty"`
}

// MatchType is the categorical tier of a match confidence.
type MatchType string

const (
	MatchExact  MatchType = "exact"
	MatchHigh   MatchType = "high"
	MatchMedium MatchType = "medium"
	MatchLow    MatchType = "low"
)

// MatchFactors holds the independent signals that feed a match confidence.
type MatchFactors struct {
	TitleSimilarity  float64 `json:"title_similarity"`
	AKASimilarity    float64 `json:"aka_similarity"`
	ArtistSimilarity float64 `json:"artist_similarity"`
	AKAMatch         bool    `json:"aka_match"`
	ISWCMatch        bool    `json:"iswc_match"`
	WriterMatch      bool    `json:"writer_match"`
}

// MatchResult links a reported song to a catalog work with an explainable confidence.
type MatchResult struct {
	Work       CatalogWork  `json:"work"`
	Confidence float64      `json:"confidence"` // 0-1
	Factors    MatchFactors `json:"factors"`
	MatchType  MatchType    `json:"match_type"`
}
