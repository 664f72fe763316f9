package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the engine tunables a deployment loads once at startup:
// the sheet's traversal order (§4.3), the background recalc cadence used
// by the dual-goroutine model (§5.1), and a default column width. Grid
// extents and column-width bounds are fixed constants (MaxColumn, MaxRow,
// MinColumnWidth, MaxColumnWidth) and are not configurable. The teacher
// carries no config layer at all; this follows
// the go-toml-based config-file pattern seen elsewhere in the pack.
type Config struct {
	Sheet  SheetConfig  `toml:"sheet"`
	Recalc RecalcConfig `toml:"recalc"`
}

// SheetConfig seeds a new Sheet's traversal flags. DefaultColumnWidth is
// decoded but not applied (see ApplyTo).
type SheetConfig struct {
	ColumnMajor        bool `toml:"column_major"`
	TopDown            bool `toml:"top_down"`
	LeftToRight        bool `toml:"left_to_right"`
	DefaultColumnWidth int  `toml:"default_column_width"`
}

// RecalcConfig governs the background recalc worker named in §5.1: how
// often it wakes to consume the dirty flag if no explicit trigger fired
// in the meantime.
type RecalcConfig struct {
	TickInterval Duration `toml:"tick_interval"`
}

// Duration wraps time.Duration so it can be TOML-decoded from a string
// like "250ms" rather than a raw integer nanosecond count.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig matches NewSheet's defaults and the ~25Hz recalc cadence
// of §5.1.
func DefaultConfig() Config {
	return Config{
		Sheet: SheetConfig{
			ColumnMajor:        true,
			TopDown:            true,
			LeftToRight:        true,
			DefaultColumnWidth: DefColumnWidth,
		},
		Recalc: RecalcConfig{
			TickInterval: Duration{40 * time.Millisecond},
		},
	}
}

// LoadConfig reads and decodes a TOML config file at path, filling in
// DefaultConfig for anything the file omits.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyTo seeds a freshly constructed Sheet with this config's traversal
// flags. DefaultColumnWidth is not applied anywhere: §6.6's width is
// per-column, not per-sheet, so there is nothing global on Sheet to set
// it on, and Sheet.ColumnWidth falls back to the DefColumnWidth constant
// for any column without an explicit width.
func (c Config) ApplyTo(s *Sheet) {
	s.CMajor = c.Sheet.ColumnMajor
	s.TopDown = c.Sheet.TopDown
	s.LeftRight = c.Sheet.LeftToRight
}
