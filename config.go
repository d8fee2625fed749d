package tilesort

import (
	"strings"

	"go.uber.org/zap"
)

// TileStrategy selects how the input is cut into tiles before merging.
type TileStrategy int

const (
	// FixedTiles cuts the input into tiles of Config.TileSize elements and
	// sorts each tile before the merge.
	FixedTiles TileStrategy = iota
	// NaturalRuns cuts the input at every descent, so each tile is an
	// already ordered run and only the merge phase does work. Best for
	// nearly sorted input; degrades to many single-element tiles on
	// reversed input.
	NaturalRuns
)

func (s TileStrategy) String() string {
	switch s {
	case FixedTiles:
		return "fixed"
	case NaturalRuns:
		return "runs"
	}
	return "unknown"
}

// ParseTileStrategy returns the strategy named by s ("fixed" or "runs").
func ParseTileStrategy(s string) (TileStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return FixedTiles, nil
	case "runs", "natural":
		return NaturalRuns, nil
	}
	return FixedTiles, NewConfigurationError("Strategy", s, "expected one of: fixed, runs")
}

// UnmarshalText implements encoding.TextUnmarshaler so strategies can be
// read from config files.
func (s *TileStrategy) UnmarshalText(text []byte) error {
	v, err := ParseTileStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s TileStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Config holds configuration settings for tilesort
type Config struct {
	TileSize int          `toml:"tile_size"` // number of elements sorted together before the merge
	Strategy TileStrategy `toml:"strategy"`  // how tiles are cut from the input
	Logger   *zap.Logger  `toml:"-"`         // debug logging of tile and merge phases, nil disables
}

// DefaultTileSize keeps a tile of pointer-sized elements, plus its scratch
// copy, within a typical 32KiB L1 data cache.
const DefaultTileSize = 512

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		TileSize: DefaultTileSize,
		Strategy: FixedTiles,
		Logger:   zap.NewNop(),
	}
}

// Validate reports the first invalid setting as a ConfigurationError.
func (c *Config) Validate() error {
	if c.TileSize < 1 {
		return NewConfigurationError("TileSize", c.TileSize, "must be at least 1")
	}
	if c.Strategy != FixedTiles && c.Strategy != NaturalRuns {
		return NewConfigurationError("Strategy", int(c.Strategy), "unknown tile strategy")
	}
	return nil
}

// mergeConfig takes a provided config and returns a copy with any values
// not set replaced by the defaults
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	merged := *c
	if merged.TileSize == 0 {
		merged.TileSize = d.TileSize
	}
	if merged.Logger == nil {
		merged.Logger = d.Logger
	}
	return &merged
}
