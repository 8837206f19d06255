package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/eslintls/pkg/config"
	"github.com/yaklabco/eslintls/pkg/fsutil"
)

func TestBackupConfigFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		want   fsutil.BackupConfig
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
			want:   fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
		},
		{
			name:   "no backups flag",
			modify: func(c *config.Config) { c.NoBackups = true },
			want:   fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar},
		},
		{
			name:   "dry run",
			modify: func(c *config.Config) { c.DryRun = true },
			want:   fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar},
		},
		{
			name:   "mode none",
			modify: func(c *config.Config) { c.Backups.Mode = "none" },
			want:   fsutil.BackupConfig{Mode: fsutil.BackupModeNone},
		},
		{
			name:   "empty mode",
			modify: func(c *config.Config) { c.Backups.Mode = "" },
			want:   fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.modify(cfg)
			if got := fsutil.BackupConfigFromConfig(cfg); got != tt.want {
				t.Errorf("BackupConfigFromConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("/w/a.js", fsutil.BackupModeSidecar); got != "/w/a.js.eslintls.bak" {
		t.Errorf("BackupPath(sidecar) = %q", got)
	}
	if got := fsutil.BackupPath("/w/a.js", fsutil.BackupModeNone); got != "" {
		t.Errorf("BackupPath(none) = %q, want empty", got)
	}
}

func TestCreateAndRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	path := writeFile(t, t.TempDir(), "a.js", "original")

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	if err != nil || !created {
		t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
	}
	if !fsutil.BackupExists(path, cfg.Mode) {
		t.Fatal("backup does not exist")
	}

	if err := os.WriteFile(path, []byte("fixed"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	if err != nil || created {
		t.Errorf("second CreateBackup() = %v, %v; want false, nil", created, err)
	}

	restored, err := fsutil.RestoreBackup(ctx, path, cfg.Mode)
	if err != nil || !restored {
		t.Fatalf("RestoreBackup() = %v, %v; want true, nil", restored, err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Errorf("restored content = %q, want %q", got, "original")
	}
}

func TestCreateBackupDisabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "a.js", "x")

	for _, cfg := range []fsutil.BackupConfig{
		{Enabled: false, Mode: fsutil.BackupModeSidecar},
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		if err != nil || created {
			t.Errorf("CreateBackup(%+v) = %v, %v; want false, nil", cfg, created, err)
		}
	}
	if fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
		t.Error("backup was written")
	}
}

func TestRestoreBackupMissing(t *testing.T) {
	t.Parallel()

	restored, err := fsutil.RestoreBackup(context.Background(), filepath.Join(t.TempDir(), "a.js"), fsutil.BackupModeSidecar)
	if err != nil || restored {
		t.Errorf("RestoreBackup() = %v, %v; want false, nil", restored, err)
	}
}
