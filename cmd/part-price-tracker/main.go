// Package main is the entry point for the part-price-tracker server.
package main

import (
	"os"

	"github.com/donaldgifford/part-price-tracker/cmd/part-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
