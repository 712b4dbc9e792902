package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrOutputNotWritable marks write failures on the output file itself, the
// usual cause being the file still open in a spreadsheet program.
var ErrOutputNotWritable = errors.New("output file is not writable")

// ScheduleFileName builds the conventional output name for a schedule range,
// e.g. "schedule_2025-04-06_to_2025-04-27.csv".
func ScheduleFileName(start, end time.Time, ext string) string {
	return fmt.Sprintf("schedule_%s_to_%s.%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"), ext)
}

// WriteFile writes rendered export bytes under the output directory,
// creating the directory if needed. Returns the full path written.
func WriteFile(outputDir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", fmt.Errorf("cannot write %s: %v (close the file if it is open elsewhere): %w",
				path, pathErr.Err, ErrOutputNotWritable)
		}
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
