package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/shazam-dl-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteDownloadRepository keeps the history of download attempts in SQLite
type SQLiteDownloadRepository struct {
	db *gorm.DB
}

// NewSQLiteDownloadRepository opens the history database, creating its directory and schema
func NewSQLiteDownloadRepository(dbPath string) (*SQLiteDownloadRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Download{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteDownloadRepository{db: db}, nil
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func withStatus(status domain.DownloadStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

func withLimit(limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	}
}

// Create inserts a new attempt
func (r *SQLiteDownloadRepository) Create(download *domain.Download) error {
	return r.db.Create(download).Error
}

// Update writes every column of an existing attempt
func (r *SQLiteDownloadRepository) Update(download *domain.Download) error {
	return r.db.Save(download).Error
}

// FindByID returns domain.ErrNotFound for an unknown id
func (r *SQLiteDownloadRepository) FindByID(id string) (*domain.Download, error) {
	var download domain.Download
	if err := r.db.Take(&download, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &download, nil
}

// FindAll lists attempts newest first; an empty status matches all, limit <= 0 means no limit
func (r *SQLiteDownloadRepository) FindAll(status domain.DownloadStatus, limit int) ([]*domain.Download, error) {
	var downloads []*domain.Download
	err := r.db.Scopes(withStatus(status), newestFirst, withLimit(limit)).
		Find(&downloads).Error
	return downloads, err
}

// FindLatestByLabel returns the most recent attempt for a song label, or nil when there is none
func (r *SQLiteDownloadRepository) FindLatestByLabel(label string) (*domain.Download, error) {
	var downloads []*domain.Download
	err := r.db.Scopes(newestFirst, withLimit(1)).
		Where("song_label = ?", label).
		Find(&downloads).Error
	if err != nil || len(downloads) == 0 {
		return nil, err
	}
	return downloads[0], nil
}

// GetStats counts attempts per status; every non-terminal status counts as active
func (r *SQLiteDownloadRepository) GetStats() (*domain.DownloadStats, error) {
	var rows []struct {
		Status domain.DownloadStatus
		Count  int64
	}
	if err := r.db.Model(&domain.Download{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &domain.DownloadStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case domain.StatusCompleted:
			stats.Completed += row.Count
		case domain.StatusFailed:
			stats.Failed += row.Count
		default:
			stats.Active += row.Count
		}
	}
	return stats, nil
}

// Close closes the underlying database handle
func (r *SQLiteDownloadRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
