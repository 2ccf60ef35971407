// =============================================================================
// i18ngen - File Manager Utility
// =============================================================================
//
// File operations for the generator:
//   - reading optional source files (absent is a normal condition, not an
//     error, so merge runs degrade gracefully)
//   - writing generated text with an aside-backup: the previous file is
//     renamed to <path>.<timestamp>.bak before being overwritten, which
//     gives a manual undo path
//   - unchanged-content detection, so a regeneration that produces the
//     exact same bytes is reported and skipped instead of rewritten
//   - merge summary report files
//
// =============================================================================

package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/highwayhash"
	"github.com/viant/afs"
)

// fingerprint key for change detection; any fixed 32 bytes work, the hash
// is never persisted.
var hashKey = []byte("i18ngen.0123456789ABCDEFGHIJKLMN")

// Manager handles file operations for the generator.
type Manager struct {
	fs afs.Service

	// Backup enables the aside-rename of existing files before overwrite.
	Backup bool
}

// NewManager creates a Manager. backup controls the aside-backup behavior.
func NewManager(backup bool) *Manager {
	return &Manager{fs: afs.New(), Backup: backup}
}

// =============================================================================
// READING
// =============================================================================

// ReadText returns a file's content. ok is false when the file does not
// exist; that is not an error.
func (m *Manager) ReadText(ctx context.Context, path string) (content string, ok bool, err error) {
	exists, err := m.fs.Exists(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return "", false, nil
	}

	data, err := m.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteText writes content to path, creating parent directories and, when
// backups are enabled, renaming any existing file aside first.
func (m *Manager) WriteText(ctx context.Context, path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	exists, err := m.fs.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists && m.Backup {
		if err := m.fs.Move(ctx, path, BackupPath(path, time.Now())); err != nil {
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	if err := m.fs.Upload(ctx, path, 0644, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// BackupPath returns the aside-backup name for a file at the given time:
// <path>.<YYYYMMDD_HHMMSS>.bak
func BackupPath(path string, at time.Time) string {
	return fmt.Sprintf("%s.%s.bak", path, at.Format("20060102_150405"))
}

// =============================================================================
// CHANGE DETECTION
// =============================================================================

// Unchanged reports whether path already holds exactly content, compared by
// length and content fingerprint.
func (m *Manager) Unchanged(ctx context.Context, path, content string) bool {
	existing, ok, err := m.ReadText(ctx, path)
	if err != nil || !ok || len(existing) != len(content) {
		return false
	}
	a, errA := Fingerprint([]byte(existing))
	b, errB := Fingerprint([]byte(content))
	return errA == nil && errB == nil && a == b
}

// Fingerprint returns a 64-bit content hash.
func Fingerprint(data []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// =============================================================================
// REPORTS
// =============================================================================

// WriteReport writes a run summary to a uniquely named file in dir and
// returns its path. The name carries the timestamp plus a short run id so
// reports from rapid consecutive runs never collide.
func (m *Manager) WriteReport(ctx context.Context, dir, content string) (string, error) {
	runID := uuid.New().String()[:8]
	name := fmt.Sprintf("merge_report_%s_%s.txt", time.Now().Format("20060102_150405"), runID)
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := m.fs.Upload(ctx, path, 0644, strings.NewReader(content)); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
