package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "https://quezoncity.gov.ph" {
		t.Errorf("Expected default base URL to be the QC site, got '%s'", cfg.BaseURL)
	}

	if cfg.StartDate != "2021-01-01" {
		t.Errorf("Expected default start date to be '2021-01-01', got '%s'", cfg.StartDate)
	}

	if cfg.VMax != 300 {
		t.Errorf("Expected default vmax to be 300, got %d", cfg.VMax)
	}

	if !cfg.SaveMaps {
		t.Error("Expected maps to be saved by default")
	}

	if cfg.ShowMaps {
		t.Error("Expected maps not to be displayed by default")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg := DefaultConfig()
		cfg.DataDir = filepath.Join(t.TempDir(), "data")
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "bad start date",
			mutate:  func(c *Config) { c.StartDate = "01-01-2021" },
			wantErr: true,
		},
		{
			name:    "bad end date",
			mutate:  func(c *Config) { c.EndDate = "tomorrow" },
			wantErr: true,
		},
		{
			name: "end before start",
			mutate: func(c *Config) {
				c.StartDate = "2021-02-01"
				c.EndDate = "2021-01-01"
			},
			wantErr: true,
		},
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "empty data directory",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "zero vmax",
			mutate:  func(c *Config) { c.VMax = 0 },
			wantErr: true,
		},
		{
			name:    "negative max file size",
			mutate:  func(c *Config) { c.MaxFileSize = -1 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
}

func TestDateRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartDate = "2021-01-05"
	cfg.EndDate = "2021-02-10"

	start, end, err := cfg.DateRange()
	if err != nil {
		t.Fatalf("DateRange() unexpected error: %v", err)
	}

	if got := start.Format("2006-01-02"); got != "2021-01-05" {
		t.Errorf("Expected start 2021-01-05, got %s", got)
	}
	if got := end.Format("2006-01-02"); got != "2021-02-10" {
		t.Errorf("Expected end 2021-02-10, got %s", got)
	}
}
