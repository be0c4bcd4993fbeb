package royalty

import (
	"errors"
	"fmt"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"gorm.io/gorm"
)

// ErrWorkNotFound is returned when a work ID is not in the catalog.
var ErrWorkNotFound = fmt.Errorf("work not found: %w", gorm.ErrRecordNotFound)

// ErrInvalidWork is returned for works that cannot be registered.
var ErrInvalidWork = errors.New("invalid work")

// ReconciledLine pairs a reported statement line with its best catalog match, if any.
type ReconciledLine struct {
	Song  models.SongRecord   `json:"song"`
	Match *models.MatchResult `json:"match"`
}

// ReconcileReport is the result of matching a whole statement against the catalog.
type ReconcileReport struct {
	Lines          []ReconciledLine `json:"lines"`
	Matched        int              `json:"matched"`
	Unmatched      int              `json:"unmatched"`
	MatchedGross   float64          `json:"matched_gross"`
	UnmatchedGross float64          `json:"unmatched_gross"`
}

// StatementPipeline is the pipeline estimate for the works a statement resolved to.
type StatementPipeline struct {
	Reconcile ReconcileReport              `json:"reconcile"`
	WorkIDs   []string                     `json:"work_ids"`
	Pipeline  models.CatalogPipelineResult `json:"pipeline"`
}
