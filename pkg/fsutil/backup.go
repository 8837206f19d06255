package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yaklabco/eslintls/pkg/config"
)

// BackupMode decides where backups of fixed files are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file.
	BackupModeSidecar BackupMode = "sidecar"
	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the file name of sidecar backups.
const BackupSuffix = ".eslintls.bak"

// BackupConfig controls backups taken before a fixed file is written.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupConfigFromConfig derives the backup settings of a fix run.
// --no-backups and dry runs turn backups off.
func BackupConfigFromConfig(cfg *config.Config) BackupConfig {
	if cfg == nil {
		return BackupConfig{Mode: BackupModeSidecar}
	}
	mode := BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = BackupModeSidecar
	}
	return BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups && !cfg.DryRun && mode != BackupModeNone,
		Mode:    mode,
	}
}

// BackupPath returns where the backup of path lives, or "" without backups.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location. An existing backup is kept
// so the content from before the first fix survives repeated runs. It reports
// whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backup := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || backup == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	if _, err := os.Stat(backup); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	written, err := copyFile(ctx, path, backup)
	if err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}
	return written, nil
}

// RestoreBackup writes the backup of path back over it. It reports whether a
// backup existed.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false, nil
	}
	restored, err := copyFile(ctx, backup, path)
	if err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}
	return restored, nil
}

// BackupExists reports whether path has a backup.
func BackupExists(path string, mode BackupMode) bool {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false
	}
	_, err := os.Stat(backup)
	return err == nil
}

// copyFile atomically copies src to dst keeping the mode of src. A missing src
// is not an error and copies nothing.
func copyFile(ctx context.Context, src, dst string) (bool, error) {
	content, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	stat, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if err := WriteAtomic(ctx, dst, content, stat.Mode()); err != nil {
		return false, err
	}
	return true, nil
}
