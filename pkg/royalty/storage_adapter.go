package royalty

import (
	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/storage"
)

// storageAdapter adapts storage.DBClient rows to the engines' records.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage opens (creating if needed) a SQLite catalog store.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func (s *storageAdapter) RegisterWork(work models.CatalogWork) (string, error) {
	return s.db.RegisterWork(work)
}

func (s *storageAdapter) GetWorkByID(workID string) (*models.CatalogWork, error) {
	w, err := s.db.GetWorkByID(workID)
	if err != nil {
		return nil, err
	}
	work := w.ToModel()
	return &work, nil
}

func (s *storageAdapter) ListWorks() ([]models.CatalogWork, error) {
	rows, err := s.db.ListWorks()
	if err != nil {
		return nil, err
	}
	works := make([]models.CatalogWork, len(rows))
	for i, row := range rows {
		works[i] = row.ToModel()
	}
	return works, nil
}

func (s *storageAdapter) DeleteWorkByID(workID string) error {
	return s.db.DeleteWorkByID(workID)
}

func (s *storageAdapter) CountWorks() (int, error) {
	n, err := s.db.CountWorks()
	return int(n), err
}

func (s *storageAdapter) UpsertSongMeta(meta models.SongMetaForPipeline) error {
	return s.db.UpsertSongMeta(meta)
}

func (s *storageAdapter) GetSongMeta(workID string) (*models.SongMetaForPipeline, error) {
	row, err := s.db.GetSongMeta(workID)
	if err != nil {
		return nil, err
	}
	meta := row.ToModel()
	return &meta, nil
}

func (s *storageAdapter) ListSongMeta() ([]models.SongMetaForPipeline, error) {
	rows, err := s.db.ListSongMeta()
	if err != nil {
		return nil, err
	}
	metas := make([]models.SongMetaForPipeline, len(rows))
	for i, row := range rows {
		metas[i] = row.ToModel()
	}
	return metas, nil
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}
