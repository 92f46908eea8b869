// Package main is the single-binary entrypoint for Moodlet.
// One binary carries both the CLI and the local API server.
package main

import "github.com/ReedRawlings/moodlet/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
