package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lanrat/tilesort"
	"github.com/lanrat/tilesort/starlarksort"
)

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.star>...",
		Short: "Run Starlark scripts with the tilesort module predeclared",
		Long: `Run one or more Starlark scripts. Each script runs on its own thread
with a "tilesort" module offering sort(list, key=None, reverse=False) and
sorted(iterable, key=None, reverse=False). If any script fails, the
others are cancelled.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.sortConfig(cmd.Flags())
			if err != nil {
				return err
			}
			defer func() { _ = config.Logger.Sync() }()
			return runScripts(cmd.Context(), cmd.OutOrStdout(), config, args)
		},
	}
}

// runScripts executes each script concurrently. Output of print() is
// prefixed with the script path when more than one script runs.
func runScripts(ctx context.Context, out io.Writer, config *tilesort.Config, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			thread := &starlark.Thread{
				Name: path,
				Print: func(_ *starlark.Thread, msg string) {
					mu.Lock()
					defer mu.Unlock()
					if len(paths) > 1 {
						fmt.Fprintf(out, "%s: %s\n", path, msg)
					} else {
						fmt.Fprintln(out, msg)
					}
				},
			}
			stop := context.AfterFunc(ctx, func() {
				thread.Cancel(context.Cause(ctx).Error())
			})
			defer stop()

			config.Logger.Debug("running script", zap.String("path", path))
			if _, err := starlark.ExecFile(thread, path, nil, starlarksort.Predeclared(config)); err != nil {
				var evalErr *starlark.EvalError
				if errors.As(err, &evalErr) {
					return errors.Newf("%s", evalErr.Backtrace())
				}
				return errors.Wrapf(err, "running %s", path)
			}
			return nil
		})
	}
	return g.Wait()
}
