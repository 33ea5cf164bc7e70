package repositories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const auditTimeLayout = "20060102T150405Z"

// AuditLog keeps the raw body of every successful forecast download.
type AuditLog struct {
	dir string
	l   *logger.Logger
}

func NewAuditLog(dir string, l *logger.Logger) *AuditLog {
	return &AuditLog{dir: dir, l: l}
}

// FileName is <location>_<date>_<hour>_<step>_<fetch time>.json.
func (a *AuditLog) FileName(first *models.Weather, fetchedAt time.Time) string {
	return fmt.Sprintf("%d_%s_%02d_%s_%s.json",
		first.LocationID, first.Date, first.Hour, first.Step, fetchedAt.UTC().Format(auditTimeLayout))
}

// Write stores body next to the other audit files. A missing directory skips
// the write with a log line; it is never an error for the caller. The path
// written is returned, or "" when skipped.
func (a *AuditLog) Write(first *models.Weather, fetchedAt time.Time, body []byte) (string, error) {
	if a == nil || a.dir == "" {
		return "", nil
	}

	info, err := os.Stat(a.dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		a.l.Info("audit directory missing, raw response not saved", map[string]any{"dir": a.dir})
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat audit dir: %w", err)
	}

	path := filepath.Join(a.dir, a.FileName(first, fetchedAt))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write audit file: %w", err)
	}
	return path, nil
}
