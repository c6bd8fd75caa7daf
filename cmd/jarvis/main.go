package main

import (
	"os"

	"github.com/jmorascalyr/jarvis-coding/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
