// Package buildinfo carries build metadata injected at link time via
// -ldflags "-X github.com/azbs/giftregistry/internal/buildinfo.Version=...".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
)

// PrintBuildData writes the version banner shown on startup.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
}
