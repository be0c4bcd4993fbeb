package royalty

import (
	"context"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
)

type Service interface {
	AddWork(work models.CatalogWork) (string, error)
	GetWork(workID string) (*models.CatalogWork, error)
	ListWorks() ([]models.CatalogWork, error)
	DeleteWork(workID string) error
	CountWorks() (int, error)

	MatchSong(ctx context.Context, song models.SongRecord, minConfidence float64) ([]models.MatchResult, error)
	BestMatch(ctx context.Context, song models.SongRecord) (*models.MatchResult, error)
	ReconcileStatement(ctx context.Context, songs []models.SongRecord, minConfidence float64) (*ReconcileReport, error)

	SaveSongMeta(meta models.SongMetaForPipeline) error
	GetSongMeta(workID string) (*models.SongMetaForPipeline, error)
	SongPipeline(workID string) (*models.SongPipelineResult, error)
	CatalogPipeline(ctx context.Context) (*models.CatalogPipelineResult, error)
	EstimateStatementPipeline(ctx context.Context, songs []models.SongRecord, minConfidence float64) (*StatementPipeline, error)
	PipelineConfig() pipeline.PipelineConfig

	Close() error
}

type Storage interface {
	RegisterWork(work models.CatalogWork) (string, error)
	GetWorkByID(workID string) (*models.CatalogWork, error)
	ListWorks() ([]models.CatalogWork, error)
	DeleteWorkByID(workID string) error
	CountWorks() (int, error)
	UpsertSongMeta(meta models.SongMetaForPipeline) error
	GetSongMeta(workID string) (*models.SongMetaForPipeline, error)
	ListSongMeta() ([]models.SongMetaForPipeline, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
