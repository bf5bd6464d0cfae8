package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Len(t, config.Download.SaveDirs, 3)
	assert.Equal(t, "/storage/emulated/0/Music", config.Download.SaveDirs[0])
	assert.Equal(t, "yt-dlp", config.Download.YTDLPBinary)
	assert.Equal(t, "mp3", config.Download.AudioFormat)
	assert.Equal(t, 5*time.Minute, config.Download.Timeout)
	assert.Equal(t, 30*time.Second, config.Download.StallTimeout)
	assert.Equal(t, 60*time.Second, config.Download.RecentWindow)
	assert.Equal(t, 5.0, config.Download.ProgressMinDelta)
	assert.Equal(t, 2*time.Second, config.Download.ProgressInterval)
	assert.Equal(t, 500, config.Download.FailureExcerptLen)
	assert.Equal(t, ShazamPackage, config.Detection.PackageName)
	assert.Equal(t, 2*time.Second, config.Detection.PollInterval)
	assert.Equal(t, 5*time.Second, config.Detection.ErrorBackoff)
	assert.True(t, config.Notification.Enabled)
	assert.Equal(t, "termux", config.Notification.Method)
	assert.Equal(t, "info", config.Logging.Level)
}
