// Package main is the entry point for the kitz CLI.
package main

import (
	"os"

	"github.com/KenRoach/kitzV1-sub005/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
