// Package version holds the application version reported by the API and CLI.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/techiepharm/FinSim-sub001/internal/version.Version=v1.2.3".
var Version = "dev"
