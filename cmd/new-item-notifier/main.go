// Package main is the entry point for the new-item-notifier.
package main

import (
	"os"

	"github.com/donaldgifford/new-item-notifier/cmd/new-item-notifier/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
