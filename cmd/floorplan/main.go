// Floorplan: flooring, tile and bulk material layout calculator.
//
// Computes plank and tile layouts for rectangular and polygon rooms,
// reuses stock and offcuts, and exports cut lists, reports and labels.
// "floorplan serve" runs the same engine behind an HTTP API.
//
// Build:
//   go build -o floorplan ./cmd/floorplan
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o floorplan.exe ./cmd/floorplan
//   GOOS=darwin  GOARCH=arm64 go build -o floorplan-darwin ./cmd/floorplan
//
// Version information is injected at build time:
//   go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/floorplan

package main

import (
	"os"

	"github.com/piwi3910/floorplan/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
