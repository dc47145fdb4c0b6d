// 1brc-mmap is 1brc with every worker reading its chunk from a memory
// mapping of the file instead of a file handle.
package main

import (
	"github.com/miku/brcstat/internal/cli"
	"github.com/miku/brcstat/internal/engine"
)

func main() {
	cli.Main(engine.Mmap)
}
