package infrastructure

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var progressPattern = regexp.MustCompile(`\[download\]\s+(\d+\.\d+)%`)

// lineRule pairs a yt-dlp output pattern with the handler for its match.
// Every rule is tried against every line, in table order.
type lineRule struct {
	name    string
	pattern *regexp.Regexp
	handle  func(s *outputState, match []string)
}

var outputRules = []lineRule{
	{
		name:    "progress",
		pattern: progressPattern,
		handle: func(s *outputState, m []string) {
			if p, err := strconv.ParseFloat(m[1], 64); err == nil {
				s.progress(p)
			}
		},
	},
	{
		name:    "destination",
		pattern: regexp.MustCompile(`\[download\] Destination: (.+)`),
		handle: func(s *outputState, m []string) {
			s.setCandidate(m[1], "destination")
		},
	},
	{
		// the path may follow a colon or be quoted
		name:    "merger",
		pattern: regexp.MustCompile(`\[Merger\] Merging formats into:? (.+)`),
		handle: func(s *outputState, m []string) {
			s.setCandidateIfExists(unquote(m[1]), "merged")
		},
	},
	{
		name:    "ffmpeg-merge",
		pattern: regexp.MustCompile(`\[ffmpeg\] Merging formats into "(.+)"`),
		handle: func(s *outputState, m []string) {
			s.setCandidateIfExists(m[1], "finished")
		},
	},
	{
		// the extracted file may not exist yet when this is printed
		name:    "extract-audio",
		pattern: regexp.MustCompile(`\[ExtractAudio\] Destination: (.+)`),
		handle: func(s *outputState, m []string) {
			s.setCandidate(m[1], "audio extraction")
		},
	},
}

// ParseProgress extracts the download percentage from a yt-dlp progress line
func ParseProgress(line string) (float64, bool) {
	m := progressPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	p, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

// outputState accumulates the signals seen in one downloader run
type outputState struct {
	candidate  string
	lines      int
	onProgress func(percent float64)
	exists     func(path string) bool
	logger     *zap.Logger
}

func newOutputState(onProgress func(float64), logger *zap.Logger) *outputState {
	if onProgress == nil {
		onProgress = func(float64) {}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &outputState{
		onProgress: onProgress,
		exists:     fileExists,
		logger:     logger,
	}
}

// observe runs every rule against one output line
func (s *outputState) observe(line string) {
	s.lines++
	for _, rule := range outputRules {
		if m := rule.pattern.FindStringSubmatch(line); m != nil {
			rule.handle(s, m)
		}
	}
}

func (s *outputState) progress(percent float64) {
	s.onProgress(percent)
}

func (s *outputState) setCandidate(path, source string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	s.candidate = path
	s.logger.Info("Detected "+source+" file", zap.String("path", path))
}

func (s *outputState) setCandidateIfExists(path, source string) {
	path = strings.TrimSpace(path)
	if path == "" || !s.exists(path) {
		return
	}
	s.setCandidate(path, source)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
