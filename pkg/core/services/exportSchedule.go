package services

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
	"github.com/kmdeguzman/worship-scheduler/pkg/export"
)

// Export formats accepted by ExportSchedule.
const (
	FormatCSV  = "csv"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// DefaultFormats is what a build exports when no formats are requested.
var DefaultFormats = []string{FormatCSV, FormatHTML}

// ExportScheduleInput carries the schedule to render and where to put it.
type ExportScheduleInput struct {
	Events    []*scheduler.Event
	Team      []*model.Person
	StartDate time.Time
	EndDate   time.Time

	// Formats lists the output formats to write. Empty means DefaultFormats.
	Formats []string
}

// ExportSchedule renders the schedule into each requested format and writes
// the files into the configured output directory. It returns the paths
// written, in format order.
func ExportSchedule(
	cfg *config.Config,
	logger *zap.Logger,
	in ExportScheduleInput,
) ([]string, error) {
	formats := in.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	logger.Debug("Starting exportSchedule",
		zap.Strings("formats", formats),
		zap.String("output_dir", cfg.OutputDir))

	if len(in.Events) == 0 {
		return nil, fmt.Errorf("no events to export")
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		format = strings.ToLower(format)
		data, err := renderFormat(format, cfg, in)
		if err != nil {
			return nil, err
		}

		filename := export.ScheduleFileName(in.StartDate, in.EndDate, format)
		path, err := export.WriteFile(cfg.OutputDir, filename, data)
		if err != nil {
			return nil, err
		}
		logger.Info("Wrote schedule file",
			zap.String("format", format),
			zap.String("path", path))
		paths = append(paths, path)
	}

	return paths, nil
}

func renderFormat(format string, cfg *config.Config, in ExportScheduleInput) ([]byte, error) {
	switch format {
	case FormatCSV:
		return export.NewCSVExporter().Render(export.BuildScheduleDataset(in.Events))

	case FormatPDF:
		title := scheduleTitle(in.StartDate, in.EndDate)
		return export.NewPDFExporter().Render(export.BuildScheduleDataset(in.Events), title)

	case FormatHTML:
		report := export.BuildScheduleReport(in.Events, in.Team, in.StartDate, in.EndDate, cfg.ConsecutiveLimit)
		return export.NewHTMLExporter().Render(report)

	default:
		return nil, fmt.Errorf("unknown export format %q (expected csv, html, or pdf)", format)
	}
}

func scheduleTitle(start, end time.Time) string {
	return fmt.Sprintf("Team Schedule from %s to %s",
		start.Format(export.DateLabelFormat), end.Format(export.DateLabelFormat))
}
