package usage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccmate/ccmate/internal/claude"
	"github.com/ccmate/ccmate/internal/logging"
)

func writeSessionLog(t *testing.T, paths *claude.Paths, project, name string, lines ...string) {
	t.Helper()
	dir := filepath.Join(paths.ProjectsDir(), project)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	var content string
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func apiLine(uuid, ts, model string, input, output int64) string {
	return fmt.Sprintf(
		`{"uuid":%q,"timestamp":%q,"message":{"model":%q,"usage":{"input_tokens":%d,"output_tokens":%d}}}`,
		uuid, ts, model, input, output,
	)
}

func TestScanMissingProjectsDir(t *testing.T) {
	s := NewScanner(claude.NewPathsAt(t.TempDir()), logging.ForTest(t))

	records, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Scan() = %d records, want 0", len(records))
	}
}

func TestScanExtractsRecords(t *testing.T) {
	paths := claude.NewPathsAt(t.TempDir())
	writeSessionLog(t, paths, "proj-a", "session1.jsonl",
		apiLine("u1", "2026-08-20T10:00:00Z", "claude-sonnet-4", 100, 50),
		// User turns have no usage and must be skipped.
		`{"uuid":"u2","timestamp":"2026-08-20T10:00:01Z","type":"user"}`,
		// Zero-token entries are not API calls.
		`{"uuid":"u3","timestamp":"2026-08-20T10:00:02Z","message":{"model":"m","usage":{"input_tokens":0,"output_tokens":0}}}`,
		// Malformed lines are tolerated.
		`{broken json`,
	)

	s := NewScanner(paths, logging.ForTest(t))
	records, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Scan() = %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.UUID != "u1" || rec.Model != "claude-sonnet-4" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Tokens.Input != 100 || rec.Tokens.Output != 50 {
		t.Errorf("tokens = %+v", rec.Tokens)
	}
}

func TestScanTopLevelModelFallback(t *testing.T) {
	paths := claude.NewPathsAt(t.TempDir())
	writeSessionLog(t, paths, "proj", "s.jsonl",
		`{"uuid":"u1","timestamp":"2026-08-20T10:00:00Z","model":"claude-opus-4","usage":{"input_tokens":10,"output_tokens":5}}`,
	)

	s := NewScanner(paths, logging.ForTest(t))
	records, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("Scan() = %d records, want 1", len(records))
	}
	if records[0].Model != "claude-opus-4" {
		t.Errorf("Model = %q", records[0].Model)
	}
}

func TestScanDeduplicatesByUUID(t *testing.T) {
	paths := claude.NewPathsAt(t.TempDir())
	line := apiLine("same-uuid", "2026-08-20T10:00:00Z", "m", 10, 5)
	writeSessionLog(t, paths, "proj", "original.jsonl", line)
	writeSessionLog(t, paths, "proj", "resumed.jsonl", line)

	s := NewScanner(paths, logging.ForTest(t))
	records, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("Scan() = %d records, want 1 after dedup", len(records))
	}
}

func TestScanSkipsNonJSONLFiles(t *testing.T) {
	paths := claude.NewPathsAt(t.TempDir())
	writeSessionLog(t, paths, "proj", "keep.jsonl",
		apiLine("u1", "2026-08-20T10:00:00Z", "m", 1, 1),
	)
	writeSessionLog(t, paths, "proj", "notes.txt",
		apiLine("u2", "2026-08-20T10:00:00Z", "m", 1, 1),
	)

	s := NewScanner(paths, logging.ForTest(t))
	records, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("Scan() = %d records, want 1", len(records))
	}
}

func TestAggregateGroupsByDayAndModel(t *testing.T) {
	records := []Record{
		{UUID: "a", Timestamp: mustTime(t, "2026-08-20T10:00:00Z"), Model: "sonnet", Tokens: TokenCounts{Input: 100, Output: 50}},
		{UUID: "b", Timestamp: mustTime(t, "2026-08-20T18:00:00Z"), Model: "opus", Tokens: TokenCounts{Input: 10, Output: 5}},
		{UUID: "c", Timestamp: mustTime(t, "2026-08-21T09:00:00Z"), Model: "sonnet", Tokens: TokenCounts{Input: 1, Output: 1}},
	}

	report := Aggregate(records, 0, mustTime(t, "2026-08-22T00:00:00Z"))

	if len(report.Days) != 2 {
		t.Fatalf("Days = %d, want 2", len(report.Days))
	}
	if report.Days[0].Date != "2026-08-20" || report.Days[1].Date != "2026-08-21" {
		t.Errorf("days not sorted: %s, %s", report.Days[0].Date, report.Days[1].Date)
	}

	day0 := report.Days[0]
	if day0.Models["sonnet"].Input != 100 || day0.Models["opus"].Input != 10 {
		t.Errorf("day0 models = %+v", day0.Models)
	}
	if day0.Total.Total() != 165 {
		t.Errorf("day0 total = %d, want 165", day0.Total.Total())
	}
	if report.Total.Total() != 167 {
		t.Errorf("report total = %d, want 167", report.Total.Total())
	}
}

func TestAggregateWindow(t *testing.T) {
	now := mustTime(t, "2026-08-28T12:00:00Z")
	records := []Record{
		{UUID: "old", Timestamp: mustTime(t, "2026-07-01T10:00:00Z"), Model: "m", Tokens: TokenCounts{Input: 100}},
		{UUID: "new", Timestamp: mustTime(t, "2026-08-27T10:00:00Z"), Model: "m", Tokens: TokenCounts{Input: 1}},
	}

	report := Aggregate(records, 7, now)

	if len(report.Days) != 1 {
		t.Fatalf("Days = %d, want 1", len(report.Days))
	}
	if report.Total.Input != 1 {
		t.Errorf("Total.Input = %d, want 1", report.Total.Input)
	}
}

func TestAggregateDayBoundaryIsUTC(t *testing.T) {
	// 23:30 in UTC-5 is 04:30 next day UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2026, 8, 20, 23, 30, 0, 0, loc)

	report := Aggregate([]Record{
		{UUID: "x", Timestamp: ts, Model: "m", Tokens: TokenCounts{Input: 1}},
	}, 0, time.Now())

	if len(report.Days) != 1 || report.Days[0].Date != "2026-08-21" {
		t.Errorf("Days = %+v, want one entry on 2026-08-21", report.Days)
	}
}

func TestAggregateUnknownModel(t *testing.T) {
	report := Aggregate([]Record{
		{UUID: "x", Timestamp: mustTime(t, "2026-08-20T10:00:00Z"), Tokens: TokenCounts{Input: 1}},
	}, 0, time.Now())

	if _, ok := report.Days[0].Models["unknown"]; !ok {
		t.Errorf("records without model should group under unknown: %+v", report.Days[0].Models)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}
