// Package main provides the stagegen CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/stagegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
