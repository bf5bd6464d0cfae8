package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yourusername/shazam-dl-go/internal/domain"
)

// EnvPrefix is the prefix of environment variables that override configuration
const EnvPrefix = "SHAZAMDL"

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, domain.DefaultConfig())

	// If config path is provided, use it
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.shazam-dl")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv loads .env files from the working directory and the config
// directory. Variables already set in the environment win.
func loadDotEnv() error {
	candidates := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".shazam-dl", ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// setDefaults registers every key so environment overrides apply even
// when no config file sets them
func setDefaults(v *viper.Viper, d *domain.Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("download.save_dirs", d.Download.SaveDirs)
	v.SetDefault("download.ytdlp_binary", d.Download.YTDLPBinary)
	v.SetDefault("download.audio_format", d.Download.AudioFormat)
	v.SetDefault("download.audio_quality", d.Download.AudioQuality)
	v.SetDefault("download.output_log_path", d.Download.OutputLogPath)
	v.SetDefault("download.timeout", d.Download.Timeout)
	v.SetDefault("download.stall_timeout", d.Download.StallTimeout)
	v.SetDefault("download.recent_window", d.Download.RecentWindow)
	v.SetDefault("download.progress_min_delta", d.Download.ProgressMinDelta)
	v.SetDefault("download.progress_interval", d.Download.ProgressInterval)
	v.SetDefault("download.console_progress", d.Download.ConsoleProgress)
	v.SetDefault("download.media_scan", d.Download.MediaScan)
	v.SetDefault("download.media_scan_binary", d.Download.MediaScanBinary)
	v.SetDefault("download.failure_excerpt_len", d.Download.FailureExcerptLen)

	v.SetDefault("detection.package_name", d.Detection.PackageName)
	v.SetDefault("detection.list_binary", d.Detection.ListBinary)
	v.SetDefault("detection.poll_interval", d.Detection.PollInterval)
	v.SetDefault("detection.error_backoff", d.Detection.ErrorBackoff)

	v.SetDefault("notification.enabled", d.Notification.Enabled)
	v.SetDefault("notification.method", d.Notification.Method)
	v.SetDefault("notification.binary", d.Notification.Binary)
	v.SetDefault("notification.remove_binary", d.Notification.RemoveBinary)
	v.SetDefault("notification.share_binary", d.Notification.ShareBinary)

	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.database_path", d.History.DatabasePath)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.console", d.Logging.Console)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	for i, dir := range config.Download.SaveDirs {
		config.Download.SaveDirs[i] = expandPath(dir)
	}
	config.Download.OutputLogPath = expandPath(config.Download.OutputLogPath)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	// Expand home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	// Expand environment variables, including $HOME
	return os.ExpandEnv(path)
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if len(config.Download.SaveDirs) == 0 {
		return fmt.Errorf("no save directories configured")
	}

	if config.Download.YTDLPBinary == "" {
		return fmt.Errorf("yt-dlp binary not configured")
	}

	if config.Download.Timeout <= 0 || config.Download.StallTimeout <= 0 {
		return fmt.Errorf("download timeouts must be positive")
	}

	if config.Download.ProgressMinDelta < 0 {
		return fmt.Errorf("progress min delta cannot be negative")
	}

	if config.Detection.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	switch config.Notification.Method {
	case "termux", "notify-send", "osascript":
	default:
		return fmt.Errorf("unknown notification method: %s", config.Notification.Method)
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
