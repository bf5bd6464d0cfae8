package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path
	Console    bool   // also write to stdout when OutputPath is a file
	Truncate   bool   // start the file fresh instead of appending
	Header     []HeaderField
}

// HeaderField is one line of the block written at the top of a fresh log file
type HeaderField struct {
	Key   string
	Value string
}

// New creates a new logger based on configuration
func New(config Config) (*zap.Logger, error) {
	// Parse log level
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core
	switch config.OutputPath {
	case "stdout", "":
		cores = append(cores, zapcore.NewCore(newEncoder(config.Format, true), zapcore.AddSync(os.Stdout), level))
	case "stderr":
		cores = append(cores, zapcore.NewCore(newEncoder(config.Format, true), zapcore.AddSync(os.Stderr), level))
	default:
		file, err := openLogFile(config)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(newEncoder(config.Format, false), zapcore.AddSync(file), level))
		if config.Console {
			cores = append(cores, zapcore.NewCore(newEncoder(config.Format, true), zapcore.AddSync(os.Stdout), level))
		}
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}

// newEncoder builds a JSON or console encoder; color is only used on terminals
func newEncoder(format string, color bool) zapcore.Encoder {
	var encoderConfig zapcore.EncoderConfig
	if format == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if color {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// openLogFile opens the log file and writes the header block when the file starts empty
func openLogFile(config Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if config.Truncate {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(config.OutputPath, flags, 0644)
	if err != nil {
		return nil, err
	}

	if len(config.Header) > 0 {
		if info, err := file.Stat(); err == nil && info.Size() == 0 {
			writeHeader(file, config.Header)
		}
	}
	return file, nil
}

func writeHeader(w io.Writer, fields []HeaderField) {
	fmt.Fprintln(w, "==================================================")
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f.Key, f.Value)
	}
	fmt.Fprintln(w, "==================================================")
}

// SessionHeader returns the standard header fields for a new session
func SessionHeader(saveFolder string) []HeaderField {
	executable, err := os.Executable()
	if err != nil {
		executable = os.Args[0]
	}
	return []HeaderField{
		{Key: "Session started", Value: time.Now().Format("2006-01-02 15:04:05")},
		{Key: "Go runtime", Value: runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH},
		{Key: "Executable", Value: executable},
		{Key: "Save folder", Value: saveFolder},
		{Key: "Command line", Value: strings.Join(os.Args, " ")},
	}
}

// NewDefault creates a default logger for development
func NewDefault() *zap.Logger {
	logger, _ := New(Config{
		Level:      "info",
		Format:     "console",
		OutputPath: "stdout",
	})
	return logger
}
