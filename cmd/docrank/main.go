package main

import (
	"os"

	"github.com/dgallion1/docrank/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
