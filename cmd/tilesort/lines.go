package main

import (
	"bufio"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"go.uber.org/zap"

	"github.com/lanrat/tilesort"
	"github.com/lanrat/tilesort/starlarksort"
)

func newLinesCommand(opts *options) *cobra.Command {
	var reverse bool
	var key string
	cmd := &cobra.Command{
		Use:   "lines [file]",
		Short: "Sort lines of text from a file or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.sortConfig(cmd.Flags())
			if err != nil {
				return err
			}
			defer func() { _ = config.Logger.Sync() }()

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			lines, err := readLines(in)
			if err != nil {
				return err
			}
			config.Logger.Debug("read input", zap.Int("lines", len(lines)))

			sorted, err := sortLines(lines, key, reverse, config)
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), sorted)
		},
	}
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "sort in descending order")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Starlark expression for a key function, e.g. 'lambda s: s.lower()'")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return lines, nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// sortLines sorts lines by byte order, or by the keys returned by the
// Starlark function that keyExpr evaluates to.
func sortLines(lines []string, keyExpr string, reverse bool, config *tilesort.Config) ([]string, error) {
	if keyExpr == "" {
		s, err := tilesort.New(tilesort.Order[string, string]{Reverse: reverse}, config)
		if err != nil {
			return nil, err
		}
		return s.Sorted(lines)
	}

	thread := &starlark.Thread{Name: "key"}
	key, err := starlark.Eval(thread, "key", keyExpr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating --key")
	}
	values := make([]starlark.Value, len(lines))
	for i, line := range lines {
		values[i] = starlark.String(line)
	}
	sorted, err := starlarksort.Sorted(thread, values, key, reverse, config)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(sorted))
	for i, v := range sorted {
		out[i] = string(v.(starlark.String))
	}
	return out, nil
}
