// Command siliconstats is the SiliconStats telemetry agent.
package main

import "siliconstats/internal/cli"

// Set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Execute(version)
}
