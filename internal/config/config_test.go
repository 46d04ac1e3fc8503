package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	viper.Reset()

	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if viper.GetInt("backup.retention") != 10 {
		t.Errorf("expected backup.retention default 10, got %d", viper.GetInt("backup.retention"))
	}
	if viper.GetInt("usage.days") != 30 {
		t.Errorf("expected usage.days default 30, got %d", viper.GetInt("usage.days"))
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()

	// Point HOME at a temp dir so no real config file is picked up.
	t.Setenv("HOME", t.TempDir())

	Init()

	cfg, err := Load("")
	if err != nil {
		t.Errorf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be returned")
	}
	if cfg.Version != 1 {
		t.Errorf("expected default version 1, got %d", cfg.Version)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("claude_dir: /tmp/claude\nbackup:\n  retention: 5\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ClaudeDir != "/tmp/claude" {
		t.Errorf("claude_dir = %q, want /tmp/claude", cfg.ClaudeDir)
	}
	if cfg.Backup.Retention != 5 {
		t.Errorf("backup.retention = %d, want 5", cfg.Backup.Retention)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Version: 1,
		Backup:  BackupConfig{Retention: 10},
		Usage:   UsageConfig{Days: 30},
	}
	if errs := Validate(valid); len(errs) != 0 {
		t.Errorf("Validate(valid) = %v, want no errors", errs)
	}

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "version too low",
			cfg:  Config{Version: 0, Backup: BackupConfig{Retention: 1}, Usage: UsageConfig{Days: 1}},
			want: ErrVersionTooLow,
		},
		{
			name: "negative retention",
			cfg:  Config{Version: 1, Backup: BackupConfig{Retention: -1}, Usage: UsageConfig{Days: 1}},
			want: ErrNegativeRetention,
		},
		{
			name: "zero usage days",
			cfg:  Config{Version: 1, Backup: BackupConfig{Retention: 1}, Usage: UsageConfig{Days: 0}},
			want: ErrInvalidDays,
		},
		{
			name: "null byte in path",
			cfg: Config{
				Version:   1,
				ClaudeDir: "/tmp/\x00bad",
				Backup:    BackupConfig{Retention: 1},
				Usage:     UsageConfig{Days: 1},
			},
			want: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.cfg)
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not include %v", errs, tt.want)
			}
		})
	}
}
