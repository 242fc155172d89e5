package config

import (
	"fmt"
	"os"
	"strconv"

	"img2puz/internal/app"
	"img2puz/internal/extract"
)

// Config holds server configuration.
type Config struct {
	Port   string
	DBPath string
	Env    string

	// MaxUploadBytes bounds a whole /convert request body.
	MaxUploadBytes int64

	// BlackThreshold is the LuminanceThreshold fraction: a cell is black when
	// its mean luminance lies below this fraction of the image's range.
	BlackThreshold float64

	// CellMargin is the fraction of the cell pitch ignored on each side.
	CellMargin float64

	// RowTolerance is the fraction of inconsistent pixel lines accepted per band.
	RowTolerance float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	def := extract.DefaultOptions()
	return &Config{
		Port:           "8080",
		DBPath:         "img2puz.db",
		Env:            "development",
		MaxUploadBytes: 10 << 20,
		BlackThreshold: 0.5,
		CellMargin:     def.Margin,
		RowTolerance:   def.RowTolerance,
	}
}

// Load reads configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv reads configuration through getenv. Unset variables keep their
// default.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("ENV"); v != "" {
		cfg.Env = v
	}

	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"BLACK_THRESHOLD", &cfg.BlackThreshold},
		{"CELL_MARGIN", &cfg.CellMargin},
		{"ROW_TOLERANCE", &cfg.RowTolerance},
	}
	for _, f := range floats {
		v := getenv(f.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = x
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1024, got %d", c.MaxUploadBytes)
	}
	if c.BlackThreshold <= 0 || c.BlackThreshold >= 1 {
		return fmt.Errorf("BLACK_THRESHOLD must be between 0 and 1, got %v", c.BlackThreshold)
	}
	if c.CellMargin <= 0 || c.CellMargin >= 0.5 {
		return fmt.Errorf("CELL_MARGIN must be between 0 and 0.5, got %v", c.CellMargin)
	}
	if c.RowTolerance < 0 || c.RowTolerance >= 1 {
		return fmt.Errorf("ROW_TOLERANCE must be in [0, 1), got %v", c.RowTolerance)
	}
	return nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AppOptions returns the conversion options described by c.
func (c *Config) AppOptions() app.Options {
	opts := app.DefaultOptions()
	opts.Extract.Classifier = extract.LuminanceThreshold{Fraction: c.BlackThreshold}
	opts.Extract.Margin = c.CellMargin
	opts.Extract.RowTolerance = c.RowTolerance
	return opts
}
