package main

import (
	"os"

	"github.com/emberoak/caterserve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
