// 1brc-scan reads each chunk line by line with a buffered reader and keeps
// the stations in a swiss map.
//
// data:
//
// Tamale;27.5
// Bergen;9.6
// Lodwar;37.1
// Whitehorse;-3.8
// Ouarzazate;19.1
package main

import (
	"github.com/miku/brcstat/internal/cli"
	"github.com/miku/brcstat/internal/engine"
)

func main() {
	cli.Main(engine.Scan)
}
