package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shazam-dl-go/internal/domain"
)

func writeFile(t *testing.T, path string, size int, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestOutputFileResolver_NonzeroExit(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "Song.mp3")
	writeFile(t, candidate, 10, time.Now())

	_, err := NewOutputFileResolver(time.Minute, nil).Resolve(1, candidate, dir, "Song")

	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestOutputFileResolver_ExistingCandidate(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "Song_-_Artist.mp3")
	writeFile(t, candidate, 4_200_000, time.Now())

	file, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, candidate, dir, "Song - Artist")
	require.NoError(t, err)

	assert.Equal(t, candidate, file.Path)
	assert.Equal(t, int64(4_200_000), file.SizeBytes)
	assert.Equal(t, ".mp3", file.Extension)
}

func TestOutputFileResolver_CandidateWithMP3Extension(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "Song.mp3")
	writeFile(t, mp3, 10, time.Now())

	file, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, filepath.Join(dir, "Song.webm"), dir, "")
	require.NoError(t, err)

	assert.Equal(t, mp3, file.Path)
}

func TestOutputFileResolver_LabelScan(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	writeFile(t, filepath.Join(dir, "a_other.mp3"), 10, time.Now())
	writeFile(t, filepath.Join(dir, "Bohemian Rhapsody - Queen.txt"), 10, old)
	writeFile(t, filepath.Join(dir, "x_bohemian rhapsody - queen.mp3"), 10, old)
	writeFile(t, filepath.Join(dir, "y_BOHEMIAN RHAPSODY - QUEEN.mp3"), 10, old)

	file, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, "", dir, "Bohemian Rhapsody - Queen")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "x_bohemian rhapsody - queen.mp3"), file.Path, "first lexical match, case-insensitive")
}

func TestOutputFileResolver_RecentScan(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(dir, "stale.mp3"), 10, now.Add(-2*time.Minute))
	writeFile(t, filepath.Join(dir, "older.mp3"), 10, now.Add(-30*time.Second))
	writeFile(t, filepath.Join(dir, "newest.mp3"), 10, now.Add(-5*time.Second))
	writeFile(t, filepath.Join(dir, "newer.webm"), 10, now)

	resolver := NewOutputFileResolver(time.Minute, nil)
	resolver.now = func() time.Time { return now }

	file, err := resolver.Resolve(0, filepath.Join(dir, "gone.webm"), dir, "Unmatched Label")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "newest.mp3"), file.Path)
}

func TestOutputFileResolver_NothingFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stale.mp3"), 10, time.Now().Add(-time.Hour))

	_, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, "", dir, "Missing")

	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestOutputFileResolver_RenamesToMP3(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "Song.m4a")
	writeFile(t, candidate, 10, time.Now())

	file, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, candidate, dir, "Song")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Song.mp3"), file.Path)
	assert.Equal(t, ".mp3", file.Extension)
	assert.NoFileExists(t, candidate)
	assert.FileExists(t, file.Path)
}

func TestOutputFileResolver_Idempotent(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "Song.m4a")
	writeFile(t, candidate, 10, time.Now())
	resolver := NewOutputFileResolver(time.Minute, nil)

	first, err := resolver.Resolve(0, candidate, dir, "Song")
	require.NoError(t, err)
	second, err := resolver.Resolve(0, first.Path, dir, "Song")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOutputFileResolver_RenameFailureKeepsPath(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "Song.m4a")
	writeFile(t, candidate, 10, time.Now())
	// a directory at the target path makes the rename fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Song.mp3"), 0755))

	file, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, candidate, dir, "Song")
	require.NoError(t, err)

	assert.Equal(t, candidate, file.Path)
	assert.Equal(t, ".m4a", file.Extension)
}

func TestOutputFileResolver_ZeroSizeIsReported(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "Song.mp3")
	writeFile(t, candidate, 0, time.Now())

	file, err := NewOutputFileResolver(time.Minute, nil).Resolve(0, candidate, dir, "Song")
	require.NoError(t, err)

	assert.Zero(t, file.SizeBytes)
}
