// Package main is the entry point for the nin CLI client.
package main

import (
	"github.com/donaldgifford/new-item-notifier/cmd/nin/cmd"
)

func main() {
	cmd.Execute()
}
