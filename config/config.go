package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"irship/engine"
)

var (
	cfgFile = "irship/config.json"
	envFile = ".env"
)

const envPrefix = "irship"

// MaxTickRate keeps the tick period above a tenth of a millisecond.
const MaxTickRate = 10000

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	Background int `json:"background"`
	LedOn      int `json:"led_on"`
	LedOff     int `json:"led_off"`
	Frame      int `json:"frame"`
	Text       int `json:"text"`
}

type ConfigSymbols struct {
	LedOn  rune `json:"led_on"`
	LedOff rune `json:"led_off"`
}

type Theme struct {
	DrawLedBackground bool          `json:"draw_led_bg"`
	Colors            ConfigColors  `json:"colors"`
	Symbols           ConfigSymbols `json:"symbols"`
}

// TimingConfig holds the match timing. Everything except TickRate is
// counted in ticks.
type TimingConfig struct {
	TickRate           int    `json:"tick_rate"`
	SettleTicks        int    `json:"settle_ticks"`
	CursorBlinkTicks   int    `json:"cursor_blink_ticks"`
	ExploredBlinkTicks int    `json:"explored_blink_ticks"`
	ScrollRate         int    `json:"scroll_rate"`
	Banner             string `json:"banner"`
}

// LinkConfig says how to reach the other board.
type LinkConfig struct {
	Listen string `json:"listen"`
	Peer   string `json:"peer"`
	Echo   bool   `json:"echo"`
}

type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type RecordsConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

type Config struct {
	Theme   Theme         `json:"theme"`
	Timing  TimingConfig  `json:"timing"`
	Link    LinkConfig    `json:"link"`
	Log     LogConfig     `json:"log"`
	Records RecordsConfig `json:"records"`
}

// InitConfig loads the config file if there is one, then applies a local
// .env file and IRSHIP_* environment overrides on top.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// envOverrides lists the IRSHIP_* variables. A nil field was not set.
type envOverrides struct {
	TickRate           *int    `split_words:"true"`
	SettleTicks        *int    `split_words:"true"`
	CursorBlinkTicks   *int    `split_words:"true"`
	ExploredBlinkTicks *int    `split_words:"true"`
	ScrollRate         *int    `split_words:"true"`
	Banner             *string
	Listen             *string
	Peer               *string
	Echo               *bool
	LogLevel           *string `split_words:"true"`
	LogFile            *string `split_words:"true"`
	Records            *bool
	RecordsDir         *string `split_words:"true"`
}

// ApplyEnv overrides fields from IRSHIP_* environment variables.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		var perr *envconfig.ParseError
		if errors.As(err, &perr) {
			return &InvalidConfig{fmt.Sprintf("%s: invalid value %q", perr.KeyName, perr.Value)}
		}
		return &InvalidConfig{err.Error()}
	}

	override(&c.Timing.TickRate, env.TickRate)
	override(&c.Timing.SettleTicks, env.SettleTicks)
	override(&c.Timing.CursorBlinkTicks, env.CursorBlinkTicks)
	override(&c.Timing.ExploredBlinkTicks, env.ExploredBlinkTicks)
	override(&c.Timing.ScrollRate, env.ScrollRate)
	override(&c.Timing.Banner, env.Banner)
	override(&c.Link.Listen, env.Listen)
	override(&c.Link.Peer, env.Peer)
	override(&c.Link.Echo, env.Echo)
	override(&c.Log.Level, env.LogLevel)
	override(&c.Log.File, env.LogFile)
	override(&c.Records.Enabled, env.Records)
	override(&c.Records.Dir, env.RecordsDir)
	return nil
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.LedOn, c.Theme.Symbols.LedOff} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	t := c.Timing
	if t.TickRate <= 0 || t.ScrollRate <= 0 {
		return &InvalidConfig{"tick_rate and scroll_rate must be positive"}
	}
	if t.TickRate > MaxTickRate {
		return &InvalidConfig{fmt.Sprintf("tick_rate must be at most %d", MaxTickRate)}
	}
	if t.SettleTicks < 0 || t.CursorBlinkTicks <= 0 || t.ExploredBlinkTicks <= 0 {
		return &InvalidConfig{"blink periods must be positive and settle_ticks must not be negative"}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// Engine returns the match timing for the turn engine.
func (t TimingConfig) Engine() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.TickRate = t.TickRate
	cfg.SettleTicks = t.SettleTicks
	cfg.CursorBlinkTicks = t.CursorBlinkTicks
	cfg.ExploredBlinkTicks = t.ExploredBlinkTicks
	cfg.ScrollRate = t.ScrollRate
	cfg.Banner = t.Banner
	return cfg
}

// LogPath is the log file, defaulting to the XDG state directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile("irship/irship.log")
}

// RecordsDir is where finished matches are written, defaulting to the XDG
// data directory.
func (c *Config) RecordsDir() (string, error) {
	if c.Records.Dir != "" {
		return c.Records.Dir, nil
	}
	return filepath.Join(xdg.DataHome, "irship", "records"), nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
