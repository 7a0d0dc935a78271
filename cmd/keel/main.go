package main

import (
	"os"

	"github.com/go-drift/keel/cmd/keel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
