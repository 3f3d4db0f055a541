package main

import (
	"os"

	"github.com/fatih/color"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "aegis-tui: %v\n", err)
		os.Exit(1)
	}
}
