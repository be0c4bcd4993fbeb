package models

// VerificationStatus describes how a work's metadata was confirmed.
type VerificationStatus string

const (
	StatusProVerified          VerificationStatus = "pro_verified"
	StatusAlternateProVerified VerificationStatus = "alternate_pro_verified"
	StatusAIGenerated          VerificationStatus = "ai_generated"
	StatusDiscovered           VerificationStatus = "discovered"
	StatusUnknown              VerificationStatus = "unknown"
)

// IsVerified reports whether the status is one of the PRO-confirmed tiers.
func (s VerificationStatus) IsVerified() bool {
	return s == StatusProVerified || s == StatusAlternateProVerified
}

// IsUnconfirmed reports whether nothing is known about the work beyond discovery.
// Unrecognized and empty values count as unknown.
func (s VerificationStatus) IsUnconfirmed() bool {
	switch s {
	case StatusProVerified, StatusAlternateProVerified, StatusAIGenerated:
		return false
	default:
		return true
	}
}

// Valid reports whether s is one of the recognized statuses.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusProVerified, StatusAlternateProVerified, StatusAIGenerated, StatusDiscovered, StatusUnknown:
		return true
	}
	return false
}

// Registration is a work registration held by a performing rights organization.
type Registration struct {
	Organization   string `json:"organization"`
	RegistrationID string `json:"registration_id,omitempty"`
}

// SongMetaForPipeline is the metadata the valuation engine needs for one work.
// Completeness and VerificationStatus are supplied independently and may disagree.
type SongMetaForPipeline struct {
	WorkID             string             `json:"work_id"`
	Title              string             `json:"title"`
	Completeness       float64            `json:"completeness"` // 0-1
	VerificationStatus VerificationStatus `json:"verification_status"`
	ISWC               string             `json:"iswc,omitempty"`
	PublisherSplits    map[string]float64 `json:"publisher_splits,omitempty"`
	WriterSplits       map[string]float64 `json:"writer_splits,omitempty"`
	Registrations      []Registration     `json:"registrations,omitempty"`
}

// ConfidenceTier describes how reliable a pipeline estimate is.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// RightTypeBreakdown splits a pipeline value by right type.
type RightTypeBreakdown struct {
	Performance float64 `json:"performance"`
	Mechanical  float64 `json:"mechanical"`
	Sync        float64 `json:"sync"`
}

// Add returns the element-wise sum of b and o.
func (b RightTypeBreakdown) Add(o RightTypeBreakdown) RightTypeBreakdown {
	return RightTypeBreakdown{
		Performance: b.Performance + o.Performance,
		Mechanical:  b.Mechanical + o.Mechanical,
		Sync:        b.Sync + o.Sync,
	}
}

// SongPipelineResult is the pipeline estimate for a single work.
type SongPipelineResult struct {
	WorkID                string             `json:"work_id"`
	Title                 string             `json:"title"`
	AnnualGrossEstimate   float64            `json:"annual_gross_estimate"`
	MonthlyNetBaseline    float64            `json:"monthly_net_baseline"`
	DecayK                float64            `json:"decay_k"`
	DomesticPipeline      float64            `json:"domestic_pipeline"`
	InternationalPipeline float64            `json:"international_pipeline"`
	RawPipeline           float64            `json:"raw_pipeline"`
	Collectability        float64            `json:"collectability"`
	CollectiblePipeline   float64            `json:"collectible_pipeline"`
	ByRight               RightTypeBreakdown `json:"by_right"`
	Confidence            ConfidenceTier     `json:"confidence"`
}

// ScenarioBands are the low/base/high outcomes around a base estimate.
type ScenarioBands struct {
	Low  float64 `json:"low"`
	Base float64 `json:"base"`
	High float64 `json:"high"`
}

// CatalogPipelineResult aggregates song estimates across a catalog.
type CatalogPipelineResult struct {
	Songs           []SongPipelineResult `json:"songs"`
	SongCount       int                  `json:"song_count"`
	RawTotal        float64              `json:"raw_total"`
	Total           float64              `json:"total"`
	ByRight         RightTypeBreakdown   `json:"by_right"`
	Scenarios       ScenarioBands        `json:"scenarios"`
	ConfidenceScore int                  `json:"confidence_score"` // 0-100
}
