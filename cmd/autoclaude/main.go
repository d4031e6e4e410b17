package main

import (
	"os"

	"github.com/jakoblorz/go-autoclaude/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
