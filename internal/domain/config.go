package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Detection    DetectionConfig    `mapstructure:"detection"`
	Notification NotificationConfig `mapstructure:"notification"`
	History      HistoryConfig      `mapstructure:"history"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains settings for the read-only status API
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	SaveDirs          []string      `mapstructure:"save_dirs"` // tried in order
	YTDLPBinary       string        `mapstructure:"ytdlp_binary"`
	AudioFormat       string        `mapstructure:"audio_format"`
	AudioQuality      string        `mapstructure:"audio_quality"`
	OutputLogPath     string        `mapstructure:"output_log_path"` // raw yt-dlp output, truncated per download
	Timeout           time.Duration `mapstructure:"timeout"`
	StallTimeout      time.Duration `mapstructure:"stall_timeout"`
	RecentWindow      time.Duration `mapstructure:"recent_window"`
	ProgressMinDelta  float64       `mapstructure:"progress_min_delta"`
	ProgressInterval  time.Duration `mapstructure:"progress_interval"`
	ConsoleProgress   bool          `mapstructure:"console_progress"`
	MediaScan         bool          `mapstructure:"media_scan"`
	MediaScanBinary   string        `mapstructure:"media_scan_binary"`
	FailureExcerptLen int           `mapstructure:"failure_excerpt_len"`
}

// DetectionConfig contains settings for the notification poll loop
type DetectionConfig struct {
	PackageName  string        `mapstructure:"package_name"`
	ListBinary   string        `mapstructure:"list_binary"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	ErrorBackoff time.Duration `mapstructure:"error_backoff"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Method       string `mapstructure:"method"` // termux, notify-send, osascript
	Binary       string `mapstructure:"binary"`
	RemoveBinary string `mapstructure:"remove_binary"`
	ShareBinary  string `mapstructure:"share_binary"`
}

// HistoryConfig contains settings for the download history database
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // session log file, truncated at startup
	Console    bool   `mapstructure:"console"`     // also write to stdout
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8090,
		},
		Download: DownloadConfig{
			SaveDirs: []string{
				"/storage/emulated/0/Music",
				"$HOME/storage/shared/Music",
				"$HOME/Music",
			},
			YTDLPBinary:       "yt-dlp",
			AudioFormat:       "mp3",
			AudioQuality:      "0",
			OutputLogPath:     "$HOME/yt_dlp_output.txt",
			Timeout:           5 * time.Minute,
			StallTimeout:      30 * time.Second,
			RecentWindow:      60 * time.Second,
			ProgressMinDelta:  5,
			ProgressInterval:  2 * time.Second,
			ConsoleProgress:   true,
			MediaScan:         true,
			MediaScanBinary:   "am",
			FailureExcerptLen: 500,
		},
		Detection: DetectionConfig{
			PackageName:  ShazamPackage,
			ListBinary:   "termux-notification-list",
			PollInterval: 2 * time.Second,
			ErrorBackoff: 5 * time.Second,
		},
		Notification: NotificationConfig{
			Enabled:      true,
			Method:       "termux",
			Binary:       "termux-notification",
			RemoveBinary: "termux-notification-remove",
			ShareBinary:  "termux-share",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.shazam-dl/history.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "$HOME/shazam_downloader.log",
			Console:    true,
		},
	}
}
