package main

import (
	"os"

	"github.com/tmarec/stewardshift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
