package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
)

// Request size limits
const (
	// MaxBatchSongs caps statement lines accepted by a single batch request
	MaxBatchSongs = 10000

	// BatchWarningThreshold triggers logging for large batches
	BatchWarningThreshold = 2000

	// maxBodyBytes caps any JSON request body
	maxBodyBytes = 16 << 20
)

// AddWorkRequest is the request body for POST /api/works
type AddWorkRequest struct {
	Title   string                `json:"title"`
	ISWC    string                `json:"iswc,omitempty"`
	AKAs    []string              `json:"akas,omitempty"`
	Writers []models.WriterCredit `json:"writers,omitempty"`
}

// Validate checks if the request is valid
func (r *AddWorkRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	for i, w := range r.Writers {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("writers[%d]: name is required", i)
		}
		if w.OwnershipPercentage < 0 || w.OwnershipPercentage > 100 {
			return fmt.Errorf("writers[%d]: ownership_percentage must be between 0 and 100", i)
		}
	}
	return nil
}

func (r *AddWorkRequest) work() models.CatalogWork {
	return models.CatalogWork{
		Title:   strings.TrimSpace(r.Title),
		ISWC:    strings.TrimSpace(r.ISWC),
		AKAs:    r.AKAs,
		Writers: r.Writers,
	}
}

// AddWorkResponse is the response for successful work registration
type AddWorkResponse struct {
	Message string             `json:"message"`
	ID      string             `json:"id"`
	Work    models.CatalogWork `json:"work"`
}

// ListWorksResponse is the response for GET /api/works
type ListWorksResponse struct {
	Works []models.CatalogWork `json:"works"`
	Count int                  `json:"count"`
}

// DeleteWorkResponse is the response for DELETE /api/works/{id}
type DeleteWorkResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SongMetaRequest is the request body for PUT /api/works/{id}/meta
type SongMetaRequest struct {
	Completeness       float64                   `json:"completeness"`
	VerificationStatus models.VerificationStatus `json:"verification_status,omitempty"`
	ISWC               string                    `json:"iswc,omitempty"`
	PublisherSplits    map[string]float64        `json:"publisher_splits,omitempty"`
	WriterSplits       map[string]float64        `json:"writer_splits,omitempty"`
	Registrations      []models.Registration     `json:"registrations,omitempty"`
}

// Validate checks if the request is valid
func (r *SongMetaRequest) Validate() error {
	if r.Completeness < 0 || r.Completeness > 1 {
		return fmt.Errorf("completeness must be between 0 and 1, got %g", r.Completeness)
	}
	if r.VerificationStatus != "" && !r.VerificationStatus.Valid() {
		return fmt.Errorf("unknown verification_status %q", r.VerificationStatus)
	}
	for i, reg := range r.Registrations {
		if strings.TrimSpace(reg.Organization) == "" {
			return fmt.Errorf("registrations[%d]: organization is required", i)
		}
	}
	return nil
}

func (r *SongMetaRequest) meta(workID string) models.SongMetaForPipeline {
	return models.SongMetaForPipeline{
		WorkID:             workID,
		Completeness:       r.Completeness,
		VerificationStatus: r.VerificationStatus,
		ISWC:               strings.TrimSpace(r.ISWC),
		PublisherSplits:    r.PublisherSplits,
		WriterSplits:       r.WriterSplits,
		Registrations:      r.Registrations,
	}
}

// MatchRequest is the request body for POST /api/match
type MatchRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	ISWC   string `json:"iswc,omitempty"`

	// MinConfidence defaults to the search floor when omitted
	MinConfidence *float64 `json:"min_confidence,omitempty"`
}

// Validate checks if the request is valid
func (r *MatchRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.MinConfidence != nil && (*r.MinConfidence < 0 || *r.MinConfidence > 1) {
		return fmt.Errorf("min_confidence must be between 0 and 1")
	}
	return nil
}

func (r *MatchRequest) song() models.SongRecord {
	return models.SongRecord{Title: r.Title, Artist: r.Artist, ISWC: r.ISWC}
}

// MatchResponse is the response for POST /api/match
type MatchResponse struct {
	Matches []models.MatchResult `json:"matches"`
	Count   int                  `json:"count"`
}

// BatchMatchRequest is the request body for POST /api/match/batch
type BatchMatchRequest struct {
	Songs []models.SongRecord `json:"songs"`

	// MinConfidence of zero uses the server's auto-link floor
	MinConfidence float64 `json:"min_confidence,omitempty"`
}

// Validate checks if the request is valid
func (r *BatchMatchRequest) Validate() error {
	if err := validateSongs(r.Songs); err != nil {
		return err
	}
	if r.MinConfidence < 0 || r.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be between 0 and 1")
	}
	return nil
}

// StatementPipelineRequest is the request body for POST /api/pipeline/statement
type StatementPipelineRequest struct {
	Songs []models.SongRecord `json:"songs"`

	// MinConfidence of zero uses the server's auto-link floor
	MinConfidence float64 `json:"min_confidence,omitempty"`
}

// Validate checks if the request is valid
func (r *StatementPipelineRequest) Validate() error {
	if err := validateSongs(r.Songs); err != nil {
		return err
	}
	if r.MinConfidence < 0 || r.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be between 0 and 1")
	}
	return nil
}

func validateSongs(songs []models.SongRecord) error {
	if len(songs) == 0 {
		return fmt.Errorf("songs cannot be empty")
	}
	if len(songs) > MaxBatchSongs {
		return fmt.Errorf("too many songs: %d (maximum: %d)", len(songs), MaxBatchSongs)
	}
	for i, s := range songs {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("songs[%d]: title is required", i)
		}
	}
	return nil
}

// SongPipelineRequest is the request body for POST /api/pipeline/song. The song
// does not have to be in the catalog.
type SongPipelineRequest struct {
	Song models.SongMetaForPipeline `json:"song"`

	// Config overrides fields of the server's pipeline config for this request only
	Config json.RawMessage `json:"config,omitempty"`
}

// Validate checks if the request is valid
func (r *SongPipelineRequest) Validate() error {
	return validateMeta(r.Song)
}

// CatalogPipelineRequest is the request body for POST /api/pipeline/catalog
type CatalogPipelineRequest struct {
	Songs  []models.SongMetaForPipeline `json:"songs"`
	Config json.RawMessage              `json:"config,omitempty"`
}

// Validate checks if the request is valid
func (r *CatalogPipelineRequest) Validate() error {
	if len(r.Songs) > MaxBatchSongs {
		return fmt.Errorf("too many songs: %d (maximum: %d)", len(r.Songs), MaxBatchSongs)
	}
	for i, s := range r.Songs {
		if err := validateMeta(s); err != nil {
			return fmt.Errorf("songs[%d]: %w", i, err)
		}
	}
	return nil
}

func validateMeta(m models.SongMetaForPipeline) error {
	if m.Completeness < 0 || m.Completeness > 1 {
		return fmt.Errorf("completeness must be between 0 and 1, got %g", m.Completeness)
	}
	return nil
}

// resolveConfig overlays a partial config override onto base.
func resolveConfig(base pipeline.PipelineConfig, override json.RawMessage) (pipeline.PipelineConfig, error) {
	if len(override) == 0 || string(override) == "null" {
		return base, nil
	}
	cfg := base
	dec := json.NewDecoder(bytes.NewReader(override))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("invalid config: %w", err)
	}
	if dec.More() {
		return base, fmt.Errorf("invalid config: unexpected data after object")
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	WorkCount int    `json:"work_count"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
