package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/engine"
)

const (
	DefaultPort              = 8080
	DefaultFontColor         = "white"
	DefaultBackgroundColor   = "#1e1e1e"
	DefaultPollIntervalSec   = 2
	DefaultLiveTimeoutSec    = 2
	DefaultReferenceTimeout  = 10
	DefaultLogFile           = "loldb.log"
	DefaultRecordsDir        = "records"
	DefaultDebugSnapshotFile = "allgamedata.json"
)

const envPrefix = "LOLDB_"

type Config struct {
	Port                int    `json:"PORT"`
	FontColor           string `json:"DIAGRAMM_FONT"`
	BackgroundColor     string `json:"DIAGRAMM_BACKGROUND"`
	Perspective         string `json:"PERSPECTIVE"`
	HighlightSummoner   string `json:"HIGHLIGHT_SUMMONER"`
	PollIntervalSeconds int    `json:"POLL_INTERVAL_SECONDS"` // 0 disables background polling
	LiveTimeoutSeconds  int    `json:"LIVE_TIMEOUT_SECONDS"`
	ReferenceTimeoutSec int    `json:"REFERENCE_TIMEOUT_SECONDS"`
	LiveClientURL       string `json:"LIVE_CLIENT_URL"`
	DataDragonURL       string `json:"DATA_DRAGON_URL"`
	LogFile             string `json:"LOG_FILE"`
	RecordsDir          string `json:"RECORDS_DIR"`
}

func Default() *Config {
	return &Config{
		Port:                DefaultPort,
		FontColor:           DefaultFontColor,
		BackgroundColor:     DefaultBackgroundColor,
		Perspective:         string(engine.PerspectiveFixed),
		PollIntervalSeconds: DefaultPollIntervalSec,
		LiveTimeoutSeconds:  DefaultLiveTimeoutSec,
		ReferenceTimeoutSec: DefaultReferenceTimeout,
		LogFile:             DefaultLogFile,
		RecordsDir:          DefaultRecordsDir,
	}
}

// Load reads path over the defaults (a missing file is fine), then applies a
// .env file and LOLDB_* environment variables on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"DIAGRAMM_FONT":       &c.FontColor,
		"DIAGRAMM_BACKGROUND": &c.BackgroundColor,
		"PERSPECTIVE":         &c.Perspective,
		"HIGHLIGHT_SUMMONER":  &c.HighlightSummoner,
		"LIVE_CLIENT_URL":     &c.LiveClientURL,
		"DATA_DRAGON_URL":     &c.DataDragonURL,
		"LOG_FILE":            &c.LogFile,
		"RECORDS_DIR":         &c.RecordsDir,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PORT":                      &c.Port,
		"POLL_INTERVAL_SECONDS":     &c.PollIntervalSeconds,
		"LIVE_TIMEOUT_SECONDS":      &c.LiveTimeoutSeconds,
		"REFERENCE_TIMEOUT_SECONDS": &c.ReferenceTimeoutSec,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
		}
		*dst = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !engine.Perspective(c.Perspective).Valid() {
		return fmt.Errorf("invalid perspective %q (want %q or %q)", c.Perspective, engine.PerspectiveFixed, engine.PerspectiveActivePlayer)
	}
	if c.PollIntervalSeconds < 0 {
		return fmt.Errorf("invalid poll interval %d", c.PollIntervalSeconds)
	}
	if c.LiveTimeoutSeconds <= 0 || c.ReferenceTimeoutSec <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c *Config) LiveTimeout() time.Duration {
	return time.Duration(c.LiveTimeoutSeconds) * time.Second
}

func (c *Config) ReferenceTimeout() time.Duration {
	return time.Duration(c.ReferenceTimeoutSec) * time.Second
}
