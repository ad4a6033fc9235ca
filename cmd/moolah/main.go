package main

import (
	"os"

	"github.com/iwvelando/moolah/cmd/moolah/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
