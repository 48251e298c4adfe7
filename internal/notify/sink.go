// Package notify delivers finished sunset reports to files, mailboxes and the terminal.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/i474232898/sunset-scout/internal/scout"
)

// Sink receives every finished report.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, r scout.Report) error
}

// Subject is the mail subject line for a report.
func Subject(r scout.Report) string {
	return fmt.Sprintf("🌅 Sunset Scout: %d/100", r.Assessment.Score)
}

// LogSink prints the report text, to stdout by default.
type LogSink struct {
	w io.Writer
}

func NewLogSink(w io.Writer) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	return &LogSink{w: w}
}

func (s *LogSink) Name() string { return "stdout" }

func (s *LogSink) Deliver(_ context.Context, r scout.Report) error {
	_, err := io.WriteString(s.w, r.Text)
	return err
}

// FileSink saves each report as report_YYYYMMDD_HHMM.txt under dir.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (s *FileSink) Name() string { return "file" }

// Path is where the report will be written.
func (s *FileSink) Path(r scout.Report) string {
	return filepath.Join(s.dir, "report_"+r.GeneratedAt.Format("20060102_1504")+".txt")
}

func (s *FileSink) Deliver(_ context.Context, r scout.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(s.Path(r), []byte(r.Text), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// AlertSink writes a small alert file when the score reaches the threshold,
// for phone automations watching that path.
type AlertSink struct {
	path      string
	threshold int
}

func NewAlertSink(path string, threshold int) *AlertSink {
	return &AlertSink{path: path, threshold: threshold}
}

func (s *AlertSink) Name() string { return "alert" }

func (s *AlertSink) Deliver(_ context.Context, r scout.Report) error {
	a := r.Assessment
	if a.Score < s.threshold {
		return nil
	}
	body := fmt.Sprintf("%s\nScore: %d\nRating: %s\nRecommendation: %s\n",
		r.GeneratedAt.Format("2006-01-02T15:04:05.000000"), a.Score, a.Rating, a.Recommendation)
	if err := os.WriteFile(s.path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write alert file: %w", err)
	}
	return nil
}
