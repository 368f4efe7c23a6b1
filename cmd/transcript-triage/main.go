package main

import (
	"os"

	"github.com/similigh/transcript-triage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
