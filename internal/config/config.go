package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultBaseURL     = "https://quezoncity.gov.ph"
	DefaultDataDir     = "data"
	DefaultOutputDir   = "output"
	DefaultVMax        = 300
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750

	dateLayout = "2006-01-02"
)

// Config holds all configuration for the case-mapping pipeline
type Config struct {
	// Fetch configuration
	BaseURL   string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD

	// Pipeline inputs
	DataDir        string
	BoundariesFile string
	TotalsFile     string

	// Rendering configuration
	OutputDir string
	VMax      int
	SaveMaps  bool
	ShowMaps  bool

	// Stage toggles
	Fetch  bool
	Render bool

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		StartDate:      "2021-01-01",
		EndDate:        "2021-01-31",
		DataDir:        DefaultDataDir,
		BoundariesFile: "boundaries/quezon-city.geojson",
		TotalsFile:     "totals.csv",
		OutputDir:      DefaultOutputDir,
		VMax:           DefaultVMax,
		SaveMaps:       true,
		ShowMaps:       false,
		Fetch:          true,
		Render:         true,
		Version:        "1.0.0",
		LogLevel:       DefaultLogLevel,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	for _, p := range []*string{&cfg.DataDir, &cfg.BoundariesFile, &cfg.TotalsFile, &cfg.OutputDir} {
		if *p != "" {
			if expandedPath, err := filepath.Abs(*p); err == nil {
				*p = expandedPath
			}
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("QCMAP")
	viper.AutomaticEnv()

	viper.SetDefault("baseurl", cfg.BaseURL)
	viper.SetDefault("start", cfg.StartDate)
	viper.SetDefault("end", cfg.EndDate)
	viper.SetDefault("datadir", cfg.DataDir)
	viper.SetDefault("boundaries", cfg.BoundariesFile)
	viper.SetDefault("totals", cfg.TotalsFile)
	viper.SetDefault("outdir", cfg.OutputDir)
	viper.SetDefault("vmax", cfg.VMax)
	viper.SetDefault("save", cfg.SaveMaps)
	viper.SetDefault("show", cfg.ShowMaps)
	viper.SetDefault("fetch", cfg.Fetch)
	viper.SetDefault("render", cfg.Render)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("baseurl", cfg.BaseURL, "Base URL of the daily report site")
	pflag.String("start", cfg.StartDate, "First report date to fetch (YYYY-MM-DD)")
	pflag.String("end", cfg.EndDate, "Last report date to fetch (YYYY-MM-DD)")
	pflag.String("datadir", cfg.DataDir, "Directory holding downloaded report PDFs")
	pflag.String("boundaries", cfg.BoundariesFile, "GeoJSON file with barangay boundaries")
	pflag.String("totals", cfg.TotalsFile, "CSV file with citywide daily totals")
	pflag.String("outdir", cfg.OutputDir, "Directory for rendered map images")
	pflag.Int("vmax", cfg.VMax, "Maximum active-case count on the color scale")
	pflag.Bool("save", cfg.SaveMaps, "Save rendered maps as PNG files")
	pflag.Bool("show", cfg.ShowMaps, "Display rendered maps (no-op in batch runs)")
	pflag.Bool("fetch", cfg.Fetch, "Run the download stage")
	pflag.Bool("render", cfg.Render, "Run the extract/preprocess/render stage")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"baseurl", "start", "end", "datadir", "boundaries", "totals",
		"outdir", "vmax", "save", "show", "fetch", "render", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nqcmap - Quezon City COVID-19 barangay case maps\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --start=2021-01-01 --end=2021-03-31\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --fetch=false --datadir=./data --outdir=./maps\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_START       First report date\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_END         Last report date\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_DATADIR     Download directory\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_BOUNDARIES  Boundary GeoJSON file\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_TOTALS      Daily totals CSV file\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_OUTDIR      Map output directory\n")
		fmt.Fprintf(os.Stderr, "  QCMAP_VMAX        Color scale maximum\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.BaseURL = viper.GetString("baseurl")
	cfg.StartDate = viper.GetString("start")
	cfg.EndDate = viper.GetString("end")
	cfg.DataDir = viper.GetString("datadir")
	cfg.BoundariesFile = viper.GetString("boundaries")
	cfg.TotalsFile = viper.GetString("totals")
	cfg.OutputDir = viper.GetString("outdir")
	cfg.VMax = viper.GetInt("vmax")
	cfg.SaveMaps = viper.GetBool("save")
	cfg.ShowMaps = viper.GetBool("show")
	cfg.Fetch = viper.GetBool("fetch")
	cfg.Render = viper.GetBool("render")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", c.EndDate, err)
	}
	if end.Before(start) {
		return errors.New("end date must not be before start date")
	}

	if c.BaseURL == "" {
		return errors.New("base URL cannot be empty")
	}

	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	// Check if data directory exists, create if it doesn't
	if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DataDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create data directory %s: %w", c.DataDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access data directory %s: %w", c.DataDir, err)
	}

	if c.VMax <= 0 {
		return errors.New("vmax must be positive")
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// DateRange returns the parsed start and end dates.
func (c *Config) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	end, err = time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", c.EndDate, err)
	}
	return start, end, nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Start: %s, End: %s, DataDir: %s, OutputDir: %s, VMax: %d, Fetch: %t, Render: %t}",
		c.StartDate, c.EndDate, c.DataDir, c.OutputDir, c.VMax, c.Fetch, c.Render)
}
