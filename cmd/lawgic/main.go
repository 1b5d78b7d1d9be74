// Command lawgic answers questions about a local legal PDF corpus.
package main

import "github.com/lawgic-labs/lawgic/internal/adapters/driving/cli"

// version is overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
