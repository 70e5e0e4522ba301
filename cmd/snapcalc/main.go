package main

import (
	"os"

	"snapcalc/cmd/snapcalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
