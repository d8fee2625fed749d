package main

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lanrat/tilesort"
)

// options holds the flags shared by all subcommands
type options struct {
	configFile string
	tileSize   int
	strategy   string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "tilesort",
		Short:        "Stable tile-based sorting for text and Starlark scripts",
		SilenceUsage: true,
	}
	opts.addFlags(cmd.PersistentFlags())
	cmd.AddCommand(newLinesCommand(opts), newRunCommand(opts))
	return cmd
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configFile, "config", "", "TOML file with tile_size and strategy settings")
	fs.IntVar(&o.tileSize, "tile-size", 0, "elements per tile, overrides the config file")
	fs.StringVar(&o.strategy, "strategy", "", "tile strategy: fixed or runs, overrides the config file")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log tile and merge phases to stderr")
}

// sortConfig builds the sorter configuration: defaults, then the config
// file, then any flags set on the command line.
func (o *options) sortConfig(fs *pflag.FlagSet) (*tilesort.Config, error) {
	config := tilesort.DefaultConfig()
	if o.configFile != "" {
		md, err := toml.DecodeFile(o.configFile, config)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", o.configFile)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("%s: unknown settings %v", o.configFile, undecoded)
		}
	}
	if fs.Changed("tile-size") {
		config.TileSize = o.tileSize
	}
	if fs.Changed("strategy") {
		strategy, err := tilesort.ParseTileStrategy(o.strategy)
		if err != nil {
			return nil, err
		}
		config.Strategy = strategy
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if o.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, errors.Wrap(err, "building logger")
		}
		config.Logger = logger
	}
	return config, nil
}
