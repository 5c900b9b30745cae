// Package main is the entry point for the mystuff CLI tool.
package main

import (
	"os"

	"github.com/jepemo/mystuff/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
