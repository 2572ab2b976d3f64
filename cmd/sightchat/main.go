package main

import (
	"os"

	"github.com/smartsight-ai/sightchat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
