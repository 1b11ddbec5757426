package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/medicare/medicare/internal/domain/hospital"
	"github.com/medicare/medicare/internal/platform/synth"
)

var ErrNoDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Generator
	NumPatients    int    `mapstructure:"NUM_PATIENTS"`
	NumStaff       int    `mapstructure:"NUM_STAFF"`
	NumMedications int    `mapstructure:"NUM_MEDICATIONS"`
	NumProcedures  int    `mapstructure:"NUM_PROCEDURES"`
	NumYears       int    `mapstructure:"NUM_YEARS"`
	StartDate      string `mapstructure:"START_DATE"`
	Seed           uint64 `mapstructure:"SEED"`
	OutputDir      string `mapstructure:"OUTPUT_DIR"`
	WriteXLSX      bool   `mapstructure:"WRITE_XLSX"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	// Dashboard server
	Port         string        `mapstructure:"PORT"`
	CORSOrigins  []string      `mapstructure:"CORS_ORIGINS"`
	CacheTTL     time.Duration `mapstructure:"CACHE_TTL"`
	QueryTimeout time.Duration `mapstructure:"QUERY_TIMEOUT"`
	BodyLimit    string        `mapstructure:"BODY_LIMIT"`
	JWTSecret    string        `mapstructure:"DASHBOARD_JWT_SECRET"`
	HospitalName string        `mapstructure:"HOSPITAL_NAME"`
}

var keys = []string{
	"ENV", "LOG_LEVEL",
	"NUM_PATIENTS", "NUM_STAFF", "NUM_MEDICATIONS", "NUM_PROCEDURES", "NUM_YEARS",
	"START_DATE", "SEED", "OUTPUT_DIR", "WRITE_XLSX",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"PORT", "CORS_ORIGINS", "CACHE_TTL", "QUERY_TIMEOUT", "BODY_LIMIT",
	"DASHBOARD_JWT_SECRET", "HOSPITAL_NAME",
}

// Load reads configuration from a .env file in the working directory and
// the environment, environment winning. Missing values take defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	def := synth.DefaultConfig()
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("NUM_PATIENTS", def.Patients)
	v.SetDefault("NUM_STAFF", def.Staff)
	v.SetDefault("NUM_MEDICATIONS", def.Medications)
	v.SetDefault("NUM_PROCEDURES", def.Procedures)
	v.SetDefault("NUM_YEARS", def.Years)
	v.SetDefault("START_DATE", def.Start.Format(hospital.DateLayout))
	v.SetDefault("SEED", def.Seed)
	v.SetDefault("OUTPUT_DIR", "./data/raw")
	v.SetDefault("WRITE_XLSX", false)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("PORT", "8501")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("QUERY_TIMEOUT", "30s")
	v.SetDefault("BODY_LIMIT", "64K")
	v.SetDefault("HOSPITAL_NAME", "St. Mary's Medical Center")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Handle CORS_ORIGINS as comma-separated string
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AuthEnabled reports whether the dashboard API requires bearer tokens.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// RequireDatabase returns ErrNoDatabaseURL when no database is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrNoDatabaseURL
	}
	return nil
}

// Validate checks value ranges that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := c.GeneratorConfig(); err != nil {
		return err
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, got %d", c.DBMinConns)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.AuthEnabled() && !c.IsDev() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("DASHBOARD_JWT_SECRET must be at least 32 bytes outside development")
	}
	return nil
}

// GeneratorConfig converts the generator settings to a synth.Config.
func (c *Config) GeneratorConfig() (synth.Config, error) {
	start, err := time.Parse(hospital.DateLayout, c.StartDate)
	if err != nil {
		return synth.Config{}, fmt.Errorf("START_DATE must be YYYY-MM-DD: %w", err)
	}
	gc := synth.Config{
		Patients:    c.NumPatients,
		Staff:       c.NumStaff,
		Medications: c.NumMedications,
		Procedures:  c.NumProcedures,
		Years:       c.NumYears,
		Start:       start,
		Seed:        c.Seed,
	}
	if err := gc.Validate(); err != nil {
		return synth.Config{}, err
	}
	return gc, nil
}
