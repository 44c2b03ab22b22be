package main

import (
	"os"

	"github.com/jonesrussell/pagepulse/cmd"
	"github.com/jonesrussell/pagepulse/cmd/common"
)

func main() {
	if err := cmd.Execute(); err != nil {
		common.PrintErrorf("Error: %v", err)
		os.Exit(1)
	}
}
