package main

import "github.com/mrlokans/qotd/internal/cli"

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cli.Execute(Version, Commit)
}
