package royalty

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/logger"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/matching"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
	"gorm.io/gorm"
)

// royaltyService is the default implementation of the Service interface.
type royaltyService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &royaltyService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

func notFound(err error, workID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrWorkNotFound, workID)
	}
	return err
}

// AddWork registers a catalog work, merging it into an existing one with the same ISWC or title.
func (s *royaltyService) AddWork(work models.CatalogWork) (string, error) {
	if strings.TrimSpace(work.Title) == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidWork)
	}
	if work.ISWC != "" && !utils.ValidISWC(work.ISWC) {
		s.log.Warnf("ISWC %q for %q does not pass check-digit validation", work.ISWC, work.Title)
	}

	id, err := s.storage.RegisterWork(work)
	if err != nil {
		return "", fmt.Errorf("failed to register work: %w", err)
	}
	s.log.Infof("Registered work %q as %s", work.Title, id)
	return id, nil
}

func (s *royaltyService) GetWork(workID string) (*models.CatalogWork, error) {
	work, err := s.storage.GetWorkByID(workID)
	if err != nil {
		return nil, notFound(err, workID)
	}
	return work, nil
}

func (s *royaltyService) ListWorks() ([]models.CatalogWork, error) {
	works, err := s.storage.ListWorks()
	if err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}
	return works, nil
}

func (s *royaltyService) DeleteWork(workID string) error {
	if err := s.storage.DeleteWorkByID(workID); err != nil {
		return notFound(err, workID)
	}
	s.log.Infof("Deleted work %s", workID)
	return nil
}

func (s *royaltyService) CountWorks() (int, error) {
	n, err := s.storage.CountWorks()
	if err != nil {
		return 0, fmt.Errorf("failed to count works: %w", err)
	}
	return n, nil
}

// MatchSong ranks every catalog work against song, keeping those at or above minConfidence.
func (s *royaltyService) MatchSong(ctx context.Context, song models.SongRecord, minConfidence float64) ([]models.MatchResult, error) {
	works, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	matches := matching.FindPotentialMatches(song, works, minConfidence)
	s.log.Debugf("Song %q matched %d/%d works", song.Title, len(matches), len(works))
	return matches, nil
}

// BestMatch returns the top match at or above the configured floor, or nil.
func (s *royaltyService) BestMatch(ctx context.Context, song models.SongRecord) (*models.MatchResult, error) {
	works, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := matching.GetBestMatch(song, works, s.config.MatchFloor)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// ReconcileStatement links each reported song to its best work. A minConfidence of zero or
// less uses the configured floor.
func (s *royaltyService) ReconcileStatement(ctx context.Context, songs []models.SongRecord, minConfidence float64) (*ReconcileReport, error) {
	if minConfidence <= 0 {
		minConfidence = s.config.MatchFloor
	}

	works, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	best, err := matching.BatchMatchSongsContext(ctx, songs, works, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("batch matching: %w", err)
	}

	report := &ReconcileReport{Lines: make([]ReconciledLine, 0, len(songs))}
	for _, song := range songs {
		m := best[matching.BatchKey(song)]
		report.Lines = append(report.Lines, ReconciledLine{Song: song, Match: m})

		var gross float64
		if song.GrossAmount != nil {
			gross = *song.GrossAmount
		}
		if m != nil {
			report.Matched++
			report.MatchedGross += gross
		} else {
			report.Unmatched++
			report.UnmatchedGross += gross
		}
	}

	s.log.Infof("Reconciled %d lines against %d works: %d matched, %d unmatched",
		len(songs), len(works), report.Matched, report.Unmatched)
	return report, nil
}

func (s *royaltyService) SaveSongMeta(meta models.SongMetaForPipeline) error {
	if meta.VerificationStatus == "" {
		meta.VerificationStatus = models.StatusUnknown
	}
	if !meta.VerificationStatus.Valid() {
		s.log.Warnf("Unrecognized verification status %q for %s, treating as unknown", meta.VerificationStatus, meta.WorkID)
	}

	if meta.Title == "" || meta.ISWC == "" {
		work, err := s.storage.GetWorkByID(meta.WorkID)
		if err != nil {
			return notFound(err, meta.WorkID)
		}
		if meta.Title == "" {
			meta.Title = work.Title
		}
		if meta.ISWC == "" {
			meta.ISWC = work.ISWC
		}
	}

	if err := s.storage.UpsertSongMeta(meta); err != nil {
		return notFound(err, meta.WorkID)
	}
	return nil
}

func (s *royaltyService) GetSongMeta(workID string) (*models.SongMetaForPipeline, error) {
	meta, err := s.storage.GetSongMeta(workID)
	if err != nil {
		return nil, notFound(err, workID)
	}
	return meta, nil
}

// SongPipeline estimates one stored work. Works without metadata are estimated from their
// catalog record alone.
func (s *royaltyService) SongPipeline(workID string) (*models.SongPipelineResult, error) {
	meta, err := s.songMetaOrDefault(workID)
	if err != nil {
		return nil, err
	}
	result := pipeline.ComputeSongPipeline(*meta, s.config.Pipeline)
	return &result, nil
}

// CatalogPipeline estimates the whole stored catalog.
func (s *royaltyService) CatalogPipeline(ctx context.Context) (*models.CatalogPipelineResult, error) {
	works, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.ListSongMeta()
	if err != nil {
		return nil, fmt.Errorf("failed to list song meta: %w", err)
	}
	byWork := make(map[string]models.SongMetaForPipeline, len(stored))
	for _, m := range stored {
		byWork[m.WorkID] = m
	}

	metas := make([]models.SongMetaForPipeline, 0, len(works))
	for _, w := range works {
		if m, ok := byWork[w.ID]; ok {
			metas = append(metas, m)
			continue
		}
		metas = append(metas, defaultSongMeta(w))
	}

	result := pipeline.ComputeCatalogPipeline(metas, s.config.Pipeline)
	s.log.Infof("Catalog pipeline: %d works, total %.2f, confidence %d",
		result.SongCount, result.Total, result.ConfidenceScore)
	return &result, nil
}

// EstimateStatementPipeline reconciles a statement at minConfidence (see ReconcileStatement)
// and estimates the pipeline of the distinct works it resolved to, in first-seen order.
func (s *royaltyService) EstimateStatementPipeline(ctx context.Context, songs []models.SongRecord, minConfidence float64) (*StatementPipeline, error) {
	report, err := s.ReconcileStatement(ctx, songs, minConfidence)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	ids := make([]string, 0)
	metas := make([]models.SongMetaForPipeline, 0)
	for _, line := range report.Lines {
		if line.Match == nil || seen[line.Match.Work.ID] {
			continue
		}
		seen[line.Match.Work.ID] = true

		meta, err := s.songMetaOrDefault(line.Match.Work.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, line.Match.Work.ID)
		metas = append(metas, *meta)
	}

	return &StatementPipeline{
		Reconcile: *report,
		WorkIDs:   ids,
		Pipeline:  pipeline.ComputeCatalogPipeline(metas, s.config.Pipeline),
	}, nil
}

func (s *royaltyService) PipelineConfig() pipeline.PipelineConfig {
	return s.config.Pipeline
}

func (s *royaltyService) Close() error {
	return s.storage.Close()
}

func (s *royaltyService) catalog(ctx context.Context) ([]models.CatalogWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	works, err := s.storage.ListWorks()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return works, nil
}

func (s *royaltyService) songMetaOrDefault(workID string) (*models.SongMetaForPipeline, error) {
	meta, err := s.storage.GetSongMeta(workID)
	if err == nil {
		return meta, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load song meta: %w", err)
	}

	work, err := s.storage.GetWorkByID(workID)
	if err != nil {
		return nil, notFound(err, workID)
	}
	m := defaultSongMeta(*work)
	return &m, nil
}

// defaultSongMeta stands in for a work nobody has assessed: zero completeness, unknown status.
func defaultSongMeta(w models.CatalogWork) models.SongMetaForPipeline {
	return models.SongMetaForPipeline{
		WorkID:             w.ID,
		Title:              w.Title,
		VerificationStatus: models.StatusUnknown,
		ISWC:               w.ISWC,
	}
}
