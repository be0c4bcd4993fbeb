package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	customlogger "github.com/EncoreMusictech/encore-live-sub011/pkg/logger"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "royalty.sqlite3"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Work struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string         `gorm:"index:idx_work_title" json:"title"`
	ISWC      string         `json:"iswc"`
	ISWCKey   string         `gorm:"index:idx_work_iswc" json:"-"`
	AKAs      []WorkAKA      `gorm:"foreignKey:WorkID" json:"akas"`
	Writers   []WriterCredit `gorm:"foreignKey:WorkID" json:"writers"`
	CreatedAt time.Time
}

type WorkAKA struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	WorkID string `gorm:"type:varchar(36);index:idx_aka_work" json:"work_id"`
	Title  string `json:"title"`
}

type WriterCredit struct {
	ID                  uint    `gorm:"primaryKey;autoIncrement"`
	WorkID              string  `gorm:"type:varchar(36);index:idx_writer_work" json:"work_id"`
	Name                string  `json:"name"`
	OwnershipPercentage float64 `json:"ownership_percentage"`
	Role                string  `json:"role"`
}

// SongMeta is the stored pipeline metadata for a work, one row per work.
type SongMeta struct {
	WorkID             string                    `gorm:"primaryKey;type:varchar(36)" json:"work_id"`
	Title              string                    `json:"title"`
	Completeness       float64                   `json:"completeness"`
	VerificationStatus models.VerificationStatus `gorm:"type:varchar(32)" json:"verification_status"`
	ISWC               string                    `json:"iswc"`
	PublisherSplits    map[string]float64        `gorm:"serializer:json" json:"publisher_splits"`
	WriterSplits       map[string]float64        `gorm:"serializer:json" json:"writer_splits"`
	Registrations      []models.Registration     `gorm:"serializer:json" json:"registrations"`
	UpdatedAt          time.Time
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("ROYALTY_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if err := utils.MakeParentDir(dbPath); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(customlogger.GetLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Work{}, &WorkAKA{}, &WriterCredit{}, &SongMeta{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RegisterWork stores w and returns its ID. An existing work with the same ISWC, or the same
// title and no ISWC, is reused: its missing ISWC is filled in, and new writers and titles are
// merged, a differing title becoming an AKA.
func (c *DBClient) RegisterWork(w models.CatalogWork) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	title := strings.TrimSpace(w.Title)
	if title == "" {
		return "", errors.New("work title is required")
	}
	key := utils.NormalizeISWC(w.ISWC)

	var id string
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := findExistingWork(tx, title, key)

		if errors.Is(err, gorm.ErrRecordNotFound) {
			work := Work{
				ID:      utils.GenerateUUID(),
				Title:   title,
				ISWC:    strings.TrimSpace(w.ISWC),
				ISWCKey: key,
				AKAs:    newAKAs(nil, title, w.AKAs),
				Writers: newWriters(nil, w.Writers),
			}
			if err := tx.Create(&work).Error; err != nil {
				return fmt.Errorf("creating work: %w", err)
			}
			id = work.ID
			return nil
		}
		if err != nil {
			return fmt.Errorf("querying existing work: %w", err)
		}

		id = existing.ID
		if existing.ISWCKey == "" && key != "" {
			if err := tx.Model(existing).Updates(map[string]any{"iswc": strings.TrimSpace(w.ISWC), "iswc_key": key}).Error; err != nil {
				return fmt.Errorf("updating iswc: %w", err)
			}
		}

		if akas := newAKAs(existing.AKAs, existing.Title, append([]string{title}, w.AKAs...)); len(akas) > 0 {
			for i := range akas {
				akas[i].WorkID = existing.ID
			}
			if err := tx.Create(&akas).Error; err != nil {
				return fmt.Errorf("adding akas: %w", err)
			}
		}
		if writers := newWriters(existing.Writers, w.Writers); len(writers) > 0 {
			for i := range writers {
				writers[i].WorkID = existing.ID
			}
			if err := tx.Create(&writers).Error; err != nil {
				return fmt.Errorf("adding writers: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// findExistingWork looks a work up by ISWC key, then by title among works that have no
// ISWC yet. A title match never claims a work registered under a different code.
func findExistingWork(tx *gorm.DB, title, key string) (*Work, error) {
	var work Work
	if key != "" {
		err := tx.Preload("AKAs").Preload("Writers").Where("iswc_key = ?", key).Order("created_at").First(&work).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return &work, err
		}
	}

	q := tx.Preload("AKAs").Preload("Writers").Where("title = ?", title)
	if key != "" {
		q = q.Where("iswc_key = ?", "")
	}
	if err := q.Order("created_at").First(&work).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

// newAKAs returns the titles not already present in have or equal to canonical
// (case-insensitive).
func newAKAs(have []WorkAKA, canonical string, titles []string) []WorkAKA {
	seen := map[string]bool{strings.ToLower(canonical): true}
	for _, a := range have {
		seen[strings.ToLower(a.Title)] = true
	}

	var out []WorkAKA
	for _, t := range titles {
		t = strings.TrimSpace(t)
		k := strings.ToLower(t)
		if t == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, WorkAKA{Title: t})
	}
	return out
}

func newWriters(have []WriterCredit, credits []models.WriterCredit) []WriterCredit {
	seen := make(map[string]bool, len(have))
	for _, w := range have {
		seen[strings.ToLower(w.Name)] = true
	}

	var out []WriterCredit
	for _, wc := range credits {
		name := strings.TrimSpace(wc.Name)
		k := strings.ToLower(name)
		if name == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, WriterCredit{Name: name, OwnershipPercentage: wc.OwnershipPercentage, Role: wc.Role})
	}
	return out
}

func (c *DBClient) GetWorkByID(id string) (*Work, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var work Work
	if err := c.DB.Preload("AKAs").Preload("Writers").Where("id = ?", id).First(&work).Error; err != nil {
		return nil, fmt.Errorf("getting work %s: %w", id, err)
	}
	return &work, nil
}

func (c *DBClient) ListWorks() ([]Work, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var works []Work
	if err := c.DB.Preload("AKAs").Preload("Writers").Order("title, id").Find(&works).Error; err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}
	return works, nil
}

func (c *DBClient) CountWorks() (int64, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var count int64
	if err := c.DB.Model(&Work{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting works: %w", err)
	}
	return count, nil
}

// DeleteWorkByID removes a work together with its AKAs, writers and pipeline metadata.
func (c *DBClient) DeleteWorkByID(id string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&WorkAKA{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&WriterCredit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&SongMeta{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Work{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("deleting work %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// UpsertSongMeta stores pipeline metadata for an existing work, replacing any previous row.
func (c *DBClient) UpsertSongMeta(meta models.SongMetaForPipeline) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}

	var count int64
	if err := c.DB.Model(&Work{}).Where("id = ?", meta.WorkID).Count(&count).Error; err != nil {
		return fmt.Errorf("checking work: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("work %s: %w", meta.WorkID, gorm.ErrRecordNotFound)
	}

	row := songMetaRow(meta)
	err := c.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "work_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upserting song meta: %w", err)
	}
	return nil
}

func (c *DBClient) GetSongMeta(workID string) (*SongMeta, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var meta SongMeta
	if err := c.DB.Where("work_id = ?", workID).First(&meta).Error; err != nil {
		return nil, fmt.Errorf("getting song meta %s: %w", workID, err)
	}
	return &meta, nil
}

func (c *DBClient) ListSongMeta() ([]SongMeta, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var metas []SongMeta
	if err := c.DB.Order("title, work_id").Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("listing song meta: %w", err)
	}
	return metas, nil
}

// ToModel converts the stored row to the matching engine's record.
func (w Work) ToModel() models.CatalogWork {
	out := models.CatalogWork{ID: w.ID, Title: w.Title, ISWC: w.ISWC}
	for _, a := range w.AKAs {
		out.AKAs = append(out.AKAs, a.Title)
	}
	for _, wc := range w.Writers {
		out.Writers = append(out.Writers, models.WriterCredit{
			Name:                wc.Name,
			OwnershipPercentage: wc.OwnershipPercentage,
			Role:                wc.Role,
		})
	}
	return out
}

// ToModel converts the stored row to the pipeline engine's record.
func (m SongMeta) ToModel() models.SongMetaForPipeline {
	return models.SongMetaForPipeline{
		WorkID:             m.WorkID,
		Title:              m.Title,
		Completeness:       m.Completeness,
		VerificationStatus: m.VerificationStatus,
		ISWC:               m.ISWC,
		PublisherSplits:    m.PublisherSplits,
		WriterSplits:       m.WriterSplits,
		Registrations:      m.Registrations,
	}
}

func songMetaRow(m models.SongMetaForPipeline) SongMeta {
	return SongMeta{
		WorkID:             m.WorkID,
		Title:              m.Title,
		Completeness:       m.Completeness,
		VerificationStatus: m.VerificationStatus,
		ISWC:               m.ISWC,
		PublisherSplits:    m.PublisherSplits,
		WriterSplits:       m.WriterSplits,
		Registrations:      m.Registrations,
	}
}
