package infrastructure

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shazam-dl-go/internal/domain"
)

func setupTestRepo(t *testing.T) *SQLiteDownloadRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	repo, err := NewSQLiteDownloadRepository(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func completedDownload(t *testing.T, label, path string) *domain.Download {
	t.Helper()
	dl := domain.NewDownload(domain.NewDownloadRequest(label))
	require.NoError(t, dl.MarkInitializing())
	require.NoError(t, dl.MarkDownloading("/music"))
	require.NoError(t, dl.MarkFinalizing(0))
	require.NoError(t, dl.MarkCompleted(&domain.ResolvedFile{Path: path, SizeBytes: 1024, Extension: ".mp3"}))
	return dl
}

func TestFindByID_RoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	dl := completedDownload(t, "Song - Artist", "/music/Song.mp3")
	require.NoError(t, repo.Create(dl))

	found, err := repo.FindByID(dl.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, found.Status)
	assert.Equal(t, "/music/Song.mp3", found.FilePath)
	assert.Equal(t, int64(1024), found.SizeBytes)
	assert.Equal(t, "ytsearch:Song - Artist", found.SearchQuery)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PersistsFailure(t *testing.T) {
	repo := setupTestRepo(t)

	dl := domain.NewDownload(domain.NewDownloadRequest("Song - Artist"))
	require.NoError(t, repo.Create(dl))

	require.NoError(t, dl.MarkFailed(domain.ErrFileNotFound))
	dl.ProcessLog = "ERROR: no results"
	require.NoError(t, repo.Update(dl))

	found, err := repo.FindByID(dl.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, found.Status)
	assert.Equal(t, "ERROR: no results", found.ProcessLog)
	assert.Contains(t, found.ErrorMessage, "not found")
}

func TestFindAll_FiltersAndLimits(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 3; i++ {
		dl := completedDownload(t, "Done", "/music/done.mp3")
		dl.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(dl))
	}
	failed := domain.NewDownload(domain.NewDownloadRequest("Broken"))
	require.NoError(t, failed.MarkFailed(assert.AnError))
	require.NoError(t, repo.Create(failed))

	all, err := repo.FindAll("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	completed, err := repo.FindAll(domain.StatusCompleted, 0)
	require.NoError(t, err)
	assert.Len(t, completed, 3)

	limited, err := repo.FindAll(domain.StatusCompleted, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.True(t, !limited[0].CreatedAt.Before(limited[1].CreatedAt), "newest first")
}

func TestFindLatestByLabel(t *testing.T) {
	repo := setupTestRepo(t)

	old := domain.NewDownload(domain.NewDownloadRequest("Bohemian Rhapsody - Queen"))
	require.NoError(t, old.MarkFailed(assert.AnError))
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(old))

	newer := completedDownload(t, "Bohemian Rhapsody - Queen", "/music/Bohemian.mp3")
	require.NoError(t, repo.Create(newer))

	found, err := repo.FindLatestByLabel("Bohemian Rhapsody - Queen")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, newer.ID, found.ID)

	found, err = repo.FindLatestByLabel("Unknown - Nobody")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetStats(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(completedDownload(t, "A", "/music/a.mp3")))
	failed := domain.NewDownload(domain.NewDownloadRequest("B"))
	require.NoError(t, failed.MarkFailed(assert.AnError))
	require.NoError(t, repo.Create(failed))
	active := domain.NewDownload(domain.NewDownloadRequest("C"))
	require.NoError(t, active.MarkInitializing())
	require.NoError(t, repo.Create(active))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Active)
}
