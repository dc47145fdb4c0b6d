// data:
//
// Tamale;27.5
// Bergen;9.6
// Lodwar;37.1
// Whitehorse;-3.8
// Ouarzazate;19.1
//
// basic is the single-threaded reference: one pass over the file, one byte
// at a time, into a builtin map. Use it to check the faster programs.
package main

import (
	"github.com/miku/brcstat/internal/cli"
	"github.com/miku/brcstat/internal/engine"
)

func main() {
	cli.Main(engine.Reference)
}
