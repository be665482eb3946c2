package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig.Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"control rune", func(c *Config) { c.Theme.Symbols.LedOn = '\t' }},
		{"c1 rune", func(c *Config) { c.Theme.Symbols.LedOff = 0x85 }},
		{"zero tick rate", func(c *Config) { c.Timing.TickRate = 0 }},
		{"tick rate too high", func(c *Config) { c.Timing.TickRate = 2_000_000_000 }},
		{"negative settle", func(c *Config) { c.Timing.SettleTicks = -1 }},
		{"zero blink", func(c *Config) { c.Timing.ExploredBlinkTicks = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
	}
	for _, tt := range tests {
		c := DefaultConfig
		tt.modify(&c)
		err := c.Validate()
		var invalid *InvalidConfig
		if !errors.As(err, &invalid) {
			t.Errorf("%s: Validate() = %v, want *InvalidConfig", tt.name, err)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("IRSHIP_TICK_RATE", "1000")
	t.Setenv("IRSHIP_SETTLE_TICKS", "40")
	t.Setenv("IRSHIP_ECHO", "true")
	t.Setenv("IRSHIP_PEER", "ws://10.0.0.2:9191/link")
	t.Setenv("IRSHIP_BANNER", "")
	t.Setenv("LISTEN", ":1234")

	c := DefaultConfig
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Timing.TickRate != 1000 {
		t.Errorf("TickRate = %d, want 1000", c.Timing.TickRate)
	}
	if c.Timing.SettleTicks != 40 {
		t.Errorf("SettleTicks = %d, want 40", c.Timing.SettleTicks)
	}
	if !c.Link.Echo {
		t.Error("Echo not set")
	}
	if c.Link.Peer != "ws://10.0.0.2:9191/link" {
		t.Errorf("Peer = %q", c.Link.Peer)
	}
	if c.Timing.Banner != "" {
		t.Errorf("Banner = %q, want empty", c.Timing.Banner)
	}
	if c.Link.Listen != DefaultConfig.Link.Listen {
		t.Errorf("Listen = %q, only IRSHIP_ variables may change fields", c.Link.Listen)
	}
	if c.Timing.CursorBlinkTicks != DefaultConfig.Timing.CursorBlinkTicks {
		t.Errorf("CursorBlinkTicks = %d, unset variables must not change fields", c.Timing.CursorBlinkTicks)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	tests := map[string]string{
		"IRSHIP_TICK_RATE":            "fast",
		"IRSHIP_EXPLORED_BLINK_TICKS": "1.5",
		"IRSHIP_RECORDS":              "maybe",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			c := DefaultConfig
			err := c.ApplyEnv()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Errorf("%s=%s: ApplyEnv() = %v, want *InvalidConfig", key, val, err)
			}
		})
	}
}

func TestTimingEngine(t *testing.T) {
	timing := DefaultConfig.Timing
	timing.SettleTicks = 7
	timing.Banner = ""

	got := timing.Engine()
	if got.SettleTicks != 7 || got.Banner != "" || got.TickRate != 500 {
		t.Errorf("Engine() = %+v", got)
	}
	if got.FontWidth != 5 {
		t.Errorf("FontWidth = %d, want engine default 5", got.FontWidth)
	}
}

func TestReadCfgFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"timing": {"tick_rate": 250}, "link": {"echo": true}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c := DefaultConfig
	if err := readCfgFile(path, &c); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if c.Timing.TickRate != 250 {
		t.Errorf("TickRate = %d, want 250", c.Timing.TickRate)
	}
	if c.Timing.SettleTicks != DefaultConfig.Timing.SettleTicks {
		t.Errorf("SettleTicks = %d, want default", c.Timing.SettleTicks)
	}
	if !c.Link.Echo || c.Link.Listen != ":9191" {
		t.Errorf("Link = %+v", c.Link)
	}
}

func TestReadCfgFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"timing": `), 0644); err != nil {
		t.Fatal(err)
	}
	c := DefaultConfig
	var invalid *InvalidConfig
	if err := readCfgFile(path, &c); !errors.As(err, &invalid) {
		t.Errorf("readCfgFile = %v, want *InvalidConfig", err)
	}
}

func TestReadCfgFileMissing(t *testing.T) {
	c := DefaultConfig
	if err := readCfgFile(filepath.Join(t.TempDir(), "config.json"), &c); err != nil {
		t.Errorf("readCfgFile on a missing file = %v, want nil", err)
	}
}

func TestReadCfgFileUnreadable(t *testing.T) {
	c := DefaultConfig
	if err := readCfgFile(t.TempDir(), &c); err == nil {
		t.Error("readCfgFile on a directory = nil, want an error")
	}
}

func TestMaxTickRateIsValid(t *testing.T) {
	c := DefaultConfig
	c.Timing.TickRate = MaxTickRate
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() at MaxTickRate = %v", err)
	}
}

func TestSaveAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := DefaultConfig
	c.Theme.Symbols.LedOn = '#'
	c.Records.Dir = "/tmp/records"
	if err := saveCfgFile(path, &c, 0600); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}

	var got Config
	if err := readCfgFile(path, &got); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if got != c {
		t.Errorf("read back %+v, want %+v", got, c)
	}
}
