package infrastructure

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/shazam-dl-go/internal/domain"
	"go.uber.org/zap"
)

// YTDLPMonitor runs yt-dlp as a subprocess and watches its combined output.
// It implements domain.ProcessMonitor.
type YTDLPMonitor struct {
	config  *domain.DownloadConfig
	logger  *zap.Logger
	console *ConsoleProgress
	now     func() time.Time
}

// NewYTDLPMonitor creates a new yt-dlp monitor
func NewYTDLPMonitor(config *domain.DownloadConfig, logger *zap.Logger) *YTDLPMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLPMonitor{
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// SetConsole attaches a console progress bar that receives every progress value
func (m *YTDLPMonitor) SetConsole(console *ConsoleProgress) {
	m.console = console
}

// CheckInstalled runs yt-dlp --version and returns the reported version
func (m *YTDLPMonitor) CheckInstalled(ctx context.Context) (string, error) {
	out, err := ExecRunner{}.Run(ctx, m.config.YTDLPBinary, "--version")
	if err != nil {
		if errors.Is(err, domain.ErrToolMissing) {
			return "", err
		}
		return "", fmt.Errorf("%w: yt-dlp not working: %v", domain.ErrToolMissing, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// buildArgs builds the yt-dlp argument list for an audio-only download
func (m *YTDLPMonitor) buildArgs(searchQuery, outputTemplate string) []string {
	// exec.Command passes args directly to the process, no shell quoting needed
	return []string{
		"-v",
		"-x",
		"--audio-format", m.config.AudioFormat,
		"--audio-quality", m.config.AudioQuality,
		"--newline",
		"--restrict-filenames",
		"--no-mtime",
		"--no-playlist",
		"--force-overwrites",
		"-o", outputTemplate,
		searchQuery,
	}
}

// Run starts yt-dlp and reads its output until the process exits, stops
// producing output for StallTimeout, or exceeds Timeout. Terminated runs
// report domain.ExitCodeKilled along with ErrProcessStall, ErrProcessTimeout
// or the context error.
func (m *YTDLPMonitor) Run(ctx context.Context, searchQuery, outputTemplate string, onProgress domain.ProgressFunc) (*domain.MonitorResult, error) {
	args := m.buildArgs(searchQuery, outputTemplate)

	outputLog := m.openOutputLog()
	defer outputLog.Close()

	cmdLine := ShellEscapeCommand(m.config.YTDLPBinary, args...)
	m.logger.Info("Running command", zap.String("command", cmdLine))
	writeLogHeader(outputLog, searchQuery, cmdLine)

	// A single pipe for stdout and stderr keeps lines in the order yt-dlp wrote them
	reader, writer, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}

	cmd := exec.Command(m.config.YTDLPBinary, args...)
	cmd.Stdout = writer
	cmd.Stderr = writer
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		reader.Close()
		writer.Close()
		writeLogFooter(outputLog, false, fmt.Sprintf("failed to start: %v", err))
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrToolMissing, m.config.YTDLPBinary)
		}
		return nil, fmt.Errorf("failed to start yt-dlp: %w", err)
	}
	// the child holds its own copy; ours must go so EOF arrives on exit
	writer.Close()

	lines := make(chan string, 64)
	go scanLines(reader, lines)

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- cmd.Wait()
	}()

	throttle := NewProgressThrottle(m.config.ProgressMinDelta, m.config.ProgressInterval, m.now)
	notify := throttle.Wrap(onProgress)
	state := newOutputState(func(percent float64) {
		if m.console != nil {
			m.console.Set(percent)
		}
		notify(percent)
	}, m.logger)

	hardTimer := time.NewTimer(m.config.Timeout)
	defer hardTimer.Stop()
	stallTimer := time.NewTimer(m.config.StallTimeout)
	defer stallTimer.Stop()

	var abortErr error
read:
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				break read
			}
			stallTimer.Reset(m.config.StallTimeout)
			fmt.Fprintln(outputLog, line)
			state.observe(line)
		case <-stallTimer.C:
			m.logger.Warn("No output from yt-dlp, process may be hanging",
				zap.Duration("stall_timeout", m.config.StallTimeout))
			abortErr = domain.ErrProcessStall
			break read
		case <-hardTimer.C:
			m.logger.Warn("yt-dlp timed out, killing it", zap.Duration("timeout", m.config.Timeout))
			abortErr = domain.ErrProcessTimeout
			break read
		case <-ctx.Done():
			abortErr = ctx.Err()
			break read
		}
	}

	var waitErr error
	if abortErr == nil {
		// output closed; the process should be exiting, but the budget still applies
		select {
		case waitErr = <-waitDone:
		case <-hardTimer.C:
			abortErr = domain.ErrProcessTimeout
		case <-ctx.Done():
			abortErr = ctx.Err()
		}
	}
	if abortErr != nil {
		if err := killProcessGroup(cmd); err != nil {
			m.logger.Warn("Failed to kill yt-dlp", zap.Error(err))
		}
		waitErr = <-waitDone
	}

	reader.Close()
	for range lines {
	}

	result := &domain.MonitorResult{
		ExitCode:    exitCodeOf(waitErr),
		Destination: state.candidate,
		Lines:       state.lines,
	}
	if abortErr != nil {
		result.ExitCode = domain.ExitCodeKilled
	}

	if m.console != nil {
		if result.Succeeded() {
			m.console.Finish()
		} else {
			m.console.Abort()
		}
	}

	if abortErr != nil {
		writeLogFooter(outputLog, false, abortErr.Error())
		return result, abortErr
	}

	m.logger.Info("yt-dlp process returned",
		zap.Int("exit_code", result.ExitCode),
		zap.Float64("last_progress", throttle.State().PercentComplete))
	writeLogFooter(outputLog, result.Succeeded(), fmt.Sprintf("exit code %d", result.ExitCode))
	return result, nil
}

// maxLineLen caps a single output line; the rest of a longer line is discarded
const maxLineLen = 64 * 1024

// scanLines sends every line read from r and closes lines at EOF or on a
// read error. Over-long lines are cut at maxLineLen and the pipe keeps being
// read, so yt-dlp never blocks on a full pipe.
func scanLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	reader := bufio.NewReaderSize(r, maxLineLen)
	for {
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			return
		}
		text := string(line)
		for isPrefix && err == nil {
			_, isPrefix, err = reader.ReadLine()
		}
		lines <- text
		if err != nil {
			return
		}
	}
}

// exitCodeOf maps a Wait error to a process exit code
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return domain.ExitCodeKilled
}

// openOutputLog truncates the raw output log for this run.
// Output is discarded when no path is configured or the file cannot be opened.
func (m *YTDLPMonitor) openOutputLog() io.WriteCloser {
	if m.config.OutputLogPath == "" {
		return nopWriteCloser{io.Discard}
	}
	if err := os.MkdirAll(filepath.Dir(m.config.OutputLogPath), 0755); err != nil {
		m.logger.Warn("Failed to create output log directory", zap.Error(err))
		return nopWriteCloser{io.Discard}
	}
	f, err := os.OpenFile(m.config.OutputLogPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		m.logger.Warn("Failed to open output log", zap.String("path", m.config.OutputLogPath), zap.Error(err))
		return nopWriteCloser{io.Discard}
	}
	return f
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// writeLogHeader writes the download start marker
func writeLogHeader(w io.Writer, query, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "=== [%s] Download: %s ===\n", timestamp, query)
	fmt.Fprintf(w, "$ %s\n", cmdLine)
}

// writeLogFooter writes the download end marker
func writeLogFooter(w io.Writer, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, status, message)
	fmt.Fprint(w, "=== END ===\n")
}

// fileExists reports whether path names an existing regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
