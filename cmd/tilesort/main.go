// Command tilesort sorts lines of text, or runs Starlark scripts that have
// the tilesort module available.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
