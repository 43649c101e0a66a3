package main

import (
	"os"

	"github.com/schedulr-app/schedulr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
