// Package usage reads Claude Code session logs and aggregates token
// consumption per day and model.
package usage

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/errors"
)

// TokenCounts holds the four token counters reported per API call.
type TokenCounts struct {
	Input         int64 `json:"input_tokens"`
	Output        int64 `json:"output_tokens"`
	CacheCreation int64 `json:"cache_creation_input_tokens"`
	CacheRead     int64 `json:"cache_read_input_tokens"`
}

// Total returns the sum of all counters.
func (t TokenCounts) Total() int64 {
	return t.Input + t.Output + t.CacheCreation + t.CacheRead
}

func (t *TokenCounts) add(o TokenCounts) {
	t.Input += o.Input
	t.Output += o.Output
	t.CacheCreation += o.CacheCreation
	t.CacheRead += o.CacheRead
}

// Record is one usable API call extracted from a session log line.
type Record struct {
	UUID      string
	Timestamp time.Time
	Model     string
	Tokens    TokenCounts
}

// logLine mirrors the session log schema. Model and usage usually live
// under message but older logs carry them at the top level, so both are
// decoded and the nested form wins.
type logLine struct {
	UUID      string      `json:"uuid"`
	Timestamp string      `json:"timestamp"`
	Model     string      `json:"model"`
	Usage     *TokenCounts `json:"usage"`
	Message   *struct {
		Model string       `json:"model"`
		Usage *TokenCounts `json:"usage"`
	} `json:"message"`
}

// Scanner reads session logs beneath ~/.claude/projects.
type Scanner struct {
	projectsDir string
	logger      *slog.Logger
}

// NewScanner creates a Scanner over the given Claude Code installation.
func NewScanner(paths *claude.Paths, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{projectsDir: paths.ProjectsDir(), logger: logger}
}

// Scan walks every .jsonl file under the projects directory and returns
// the usable records. A missing projects directory yields no records.
// Malformed lines are skipped: session logs are written by another
// process and partial lines are normal.
func (s *Scanner) Scan() ([]Record, error) {
	if s.projectsDir == "" {
		return nil, errors.New("projects directory not configured")
	}

	var records []Record
	seen := map[string]bool{}

	err := filepath.WalkDir(s.projectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}

		fileRecords, err := s.scanFile(path, seen)
		if err != nil {
			return err
		}
		records = append(records, fileRecords...)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "walking projects directory")
	}

	return records, nil
}

func (s *Scanner) scanFile(path string, seen map[string]bool) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening session log %s", path)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	// Session log lines hold full message content and routinely exceed
	// the default 64K token.
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	for scanner.Scan() {
		rec, ok := parseLine(scanner.Bytes())
		if !ok {
			continue
		}
		// Resumed sessions repeat earlier entries under the same uuid.
		if seen[rec.UUID] {
			continue
		}
		seen[rec.UUID] = true
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Debug("session log truncated", "path", path, "error", err)
	}

	return records, nil
}

// parseLine extracts a Record from one log line. Lines without a uuid,
// a parseable timestamp, or any token usage are not API calls and are
// dropped.
func parseLine(data []byte) (Record, bool) {
	var line logLine
	if err := json.Unmarshal(data, &line); err != nil {
		return Record{}, false
	}
	if line.UUID == "" || line.Timestamp == "" {
		return Record{}, false
	}

	ts, err := time.Parse(time.RFC3339, line.Timestamp)
	if err != nil {
		return Record{}, false
	}

	model := line.Model
	usage := line.Usage
	if line.Message != nil {
		if line.Message.Model != "" {
			model = line.Message.Model
		}
		if line.Message.Usage != nil {
			usage = line.Message.Usage
		}
	}
	if usage == nil || usage.Total() == 0 {
		return Record{}, false
	}

	return Record{
		UUID:      line.UUID,
		Timestamp: ts,
		Model:     model,
		Tokens:    *usage,
	}, true
}

// DayUsage is the aggregate for one UTC day.
type DayUsage struct {
	// Date is the UTC day in YYYY-MM-DD form.
	Date   string
	Models map[string]TokenCounts
	Total  TokenCounts
}

// Report is the aggregated usage over a window.
type Report struct {
	// Days is sorted ascending by date.
	Days  []DayUsage
	Total TokenCounts
}

// Aggregate groups records by UTC day and model, keeping only records
// from the last `days` days. days <= 0 means no window.
func Aggregate(records []Record, days int, now time.Time) *Report {
	var cutoff time.Time
	if days > 0 {
		cutoff = now.UTC().AddDate(0, 0, -days)
	}

	byDay := map[string]*DayUsage{}
	report := &Report{}

	for _, rec := range records {
		ts := rec.Timestamp.UTC()
		if days > 0 && ts.Before(cutoff) {
			continue
		}

		date := ts.Format("2006-01-02")
		day, ok := byDay[date]
		if !ok {
			day = &DayUsage{Date: date, Models: map[string]TokenCounts{}}
			byDay[date] = day
		}

		model := rec.Model
		if model == "" {
			model = "unknown"
		}
		counts := day.Models[model]
		counts.add(rec.Tokens)
		day.Models[model] = counts

		day.Total.add(rec.Tokens)
		report.Total.add(rec.Tokens)
	}

	report.Days = make([]DayUsage, 0, len(byDay))
	for _, day := range byDay {
		report.Days = append(report.Days, *day)
	}
	sort.Slice(report.Days, func(i, j int) bool {
		return report.Days[i].Date < report.Days[j].Date
	})

	return report
}
