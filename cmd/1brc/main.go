// 1brc prints min, mean and max per station. The file is cut into twice as
// many chunks as there are CPUs; every chunk is read with one positioned read
// on its own file handle and scanned byte by byte.
//
// data:
//
// Tamale;27.5
// Bergen;9.6
// Lodwar;37.1
// Whitehorse;-3.8
// Ouarzazate;19.1
//
// output:
//
// Bergen;9.6;9.6;9.6
// Lodwar;37.1;37.1;37.1
// ...
package main

import (
	"github.com/miku/brcstat/internal/cli"
	"github.com/miku/brcstat/internal/engine"
)

func main() {
	cli.Main(engine.Chunked)
}
