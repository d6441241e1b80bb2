package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogFilePath builds the per-session log file path, e.g.
// logs/czml_export.20240102_150405.log.
func LogFilePath(logsDir, programName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", programName, sessionStart.Format("20060102_150405")),
	)
}
