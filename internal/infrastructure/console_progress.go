package infrastructure

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// progressScale maps 0-100% onto bar steps with one decimal of precision
const progressScale = 10

// ConsoleProgress mirrors download progress on a terminal
type ConsoleProgress struct {
	bar *progressbar.ProgressBar
}

// NewConsoleProgress creates a progress bar writing to w
func NewConsoleProgress(w io.Writer, description string) *ConsoleProgress {
	bar := progressbar.NewOptions64(100*progressScale,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(0),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
	return &ConsoleProgress{bar: bar}
}

// Set moves the bar to percent, clamped to 0-100
func (c *ConsoleProgress) Set(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	_ = c.bar.Set64(int64(percent * progressScale))
}

// Percent returns the current bar position in percent
func (c *ConsoleProgress) Percent() float64 {
	return c.bar.State().CurrentPercent * 100
}

// Finish fills the bar to 100% and ends the line
func (c *ConsoleProgress) Finish() {
	_ = c.bar.Finish()
}

// Abort ends the line and leaves the bar where the download stopped
func (c *ConsoleProgress) Abort() {
	_ = c.bar.Exit()
}

// StdoutIsTerminal reports whether stdout is attached to a terminal
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
