package main

import (
	"os"

	"chomsky/cmd/chomsky/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
