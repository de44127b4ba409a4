package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"prepwise/server/internal/models"
)

// ExportSource is the slice of the feedback store the exporter needs.
type ExportSource interface {
	ListUnexported(ctx context.Context, limit int64) ([]models.FeedbackRecord, error)
	MarkExported(ctx context.Context, interviewIDs []string, at time.Time) error
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule  string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir string // Directory to store exported files
	Enabled   bool   // Whether to run exports
	BatchSize int64  // Max records per run
}

// FeedbackExporterJob periodically dumps graded feedback as JSONL for
// offline analysis.
type FeedbackExporterJob struct {
	source ExportSource
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger
}

func NewFeedbackExporterJob(source ExportSource, config *ExporterConfig, logger *zap.Logger) *FeedbackExporterJob {
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}
	return &FeedbackExporterJob{
		source: source,
		config: config,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduled export job
func (fej *FeedbackExporterJob) Start() error {
	if !fej.config.Enabled {
		fej.logger.Info("Feedback export is disabled, skipping scheduler")
		return nil
	}

	_, err := fej.cron.AddFunc(fej.config.Schedule, func() {
		if err := fej.RunExport(context.Background()); err != nil {
			fej.logger.Error("Export job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	fej.cron.Start()
	fej.logger.Info("Feedback exporter started", zap.String("schedule", fej.config.Schedule))

	return nil
}

// Stop stops the scheduled export job
func (fej *FeedbackExporterJob) Stop() {
	if fej.cron != nil {
		fej.cron.Stop()
	}
}

// RunExport writes every not-yet-exported feedback record as one JSON
// line and marks the batch exported.
func (fej *FeedbackExporterJob) RunExport(ctx context.Context) error {
	records, err := fej.source.ListUnexported(ctx, fej.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list unexported feedback: %w", err)
	}
	if len(records) == 0 {
		fej.logger.Info("No feedback to export")
		return nil
	}

	if err := os.MkdirAll(fej.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("feedback_export_%s.jsonl", time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(fej.config.ExportDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write export line: %w", err)
		}
		ids = append(ids, record.InterviewID)
	}

	if err := fej.source.MarkExported(ctx, ids, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark feedback exported: %w", err)
	}

	fej.logger.Info("Feedback exported",
		zap.Int("records", len(records)),
		zap.String("file", path))
	return nil
}
