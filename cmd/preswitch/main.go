// Package main is the preswitch entrypoint.
package main

import "github.com/skontar/presentation-switch/internal/cli"

// version is set at build time via -ldflags.
var version = "0.2.0"

func main() {
	cli.Execute(version)
}
