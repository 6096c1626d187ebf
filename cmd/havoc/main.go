// havoc CLI entry point.
package main

import "github.com/gethavoc/havoc/pkg/cli"

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	cli.Execute(Version)
}
