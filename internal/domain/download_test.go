package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDownloadRequest(t *testing.T) {
	req := NewDownloadRequest("Bohemian Rhapsody - Queen")

	assert.Equal(t, "Bohemian Rhapsody - Queen", req.SongLabel)
	assert.Equal(t, "ytsearch:Bohemian Rhapsody - Queen", req.SearchQuery)
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Song - Artist", expected: "Song - Artist"},
		{name: "slash", input: "AC/DC - Thunderstruck", expected: "AC_DC - Thunderstruck"},
		{name: "all unsafe", input: `a\b/c*d?e:f"g<h>i|j`, expected: "a_b_c_d_e_f_g_h_i_j"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeFilename(tt.input))
		})
	}
}

func TestNewDownload(t *testing.T) {
	download := NewDownload(NewDownloadRequest("Song - Artist"))

	assert.NotEmpty(t, download.ID)
	assert.Equal(t, "Song - Artist", download.SongLabel)
	assert.Equal(t, "ytsearch:Song - Artist", download.SearchQuery)
	assert.Equal(t, StatusIdle, download.Status)
	assert.False(t, download.IsTerminal())
}

func TestDownload_HappyPath(t *testing.T) {
	download := NewDownload(NewDownloadRequest("Song - Artist"))

	require.NoError(t, download.MarkInitializing())
	assert.Equal(t, StatusInitializing, download.Status)

	require.NoError(t, download.MarkDownloading("/music"))
	assert.Equal(t, StatusDownloading, download.Status)
	assert.Equal(t, "/music", download.SaveDir)
	assert.NotNil(t, download.StartedAt)

	require.NoError(t, download.MarkFinalizing(0))
	assert.Equal(t, StatusFinalizing, download.Status)

	require.NoError(t, download.MarkCompleted(&ResolvedFile{Path: "/music/Song.mp3", SizeBytes: 42}))
	assert.Equal(t, StatusCompleted, download.Status)
	assert.Equal(t, "/music/Song.mp3", download.FilePath)
	assert.Equal(t, int64(42), download.SizeBytes)
	assert.NotNil(t, download.CompletedAt)
	assert.True(t, download.IsTerminal())
}

func TestDownload_MarkFailed(t *testing.T) {
	download := NewDownload(NewDownloadRequest("Song - Artist"))
	require.NoError(t, download.MarkInitializing())

	require.NoError(t, download.MarkFailed(errors.New("yt-dlp missing")))

	assert.Equal(t, StatusFailed, download.Status)
	assert.Equal(t, "yt-dlp missing", download.ErrorMessage)
	assert.True(t, download.IsTerminal())
}

func TestDownload_TerminalStatesRejectTransitions(t *testing.T) {
	download := NewDownload(NewDownloadRequest("Song - Artist"))
	require.NoError(t, download.MarkInitializing())
	require.NoError(t, download.MarkFailed(nil))

	err := download.MarkDownloading("/music")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = download.MarkFailed(nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusFailed, download.Status)
}

func TestDownload_CannotSkipStates(t *testing.T) {
	download := NewDownload(NewDownloadRequest("Song - Artist"))

	assert.False(t, download.CanTransition(StatusDownloading))
	assert.False(t, download.CanTransition(StatusCompleted))
	assert.ErrorIs(t, download.MarkFinalizing(0), ErrInvalidTransition)
	assert.Equal(t, StatusIdle, download.Status)
}

func TestValidateStatus(t *testing.T) {
	assert.True(t, ValidateStatus(StatusCompleted))
	assert.True(t, ValidateStatus(StatusIdle))
	assert.False(t, ValidateStatus("queued"))
	assert.False(t, ValidateStatus(""))
}

func TestDetectionFromNotification(t *testing.T) {
	tests := []struct {
		name   string
		notif  ActiveNotification
		wantOK bool
		label  string
	}{
		{
			name:   "shazam notification",
			notif:  ActiveNotification{PackageName: ShazamPackage, Title: "Bohemian Rhapsody", Content: "Queen"},
			wantOK: true,
			label:  "Bohemian Rhapsody - Queen",
		},
		{
			name:   "surrounding whitespace is trimmed",
			notif:  ActiveNotification{PackageName: ShazamPackage, Title: "  Song ", Content: " Artist\n"},
			wantOK: true,
			label:  "Song - Artist",
		},
		{
			name:  "other package",
			notif: ActiveNotification{PackageName: "com.whatsapp", Title: "Bohemian Rhapsody", Content: "Queen"},
		},
		{
			name:  "blank content",
			notif: ActiveNotification{PackageName: ShazamPackage, Title: "Listening", Content: "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detection, ok := DetectionFromNotification(tt.notif, ShazamPackage)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.label, detection.Label())
			}
		})
	}
}

func TestAudioExtensionHelpers(t *testing.T) {
	assert.True(t, HasAudioExtension("/music/Song.mp3"))
	assert.True(t, HasAudioExtension("/music/Song.MP3"))
	assert.False(t, HasAudioExtension("/music/Song.webm"))
	assert.Equal(t, "/music/Song.mp3", WithAudioExtension("/music/Song.webm"))
	assert.Equal(t, "/music/Song.mp3", WithAudioExtension("/music/Song"))
}
