package main

import (
	"os"

	"todoshell/pkg/cli"
)

func main() {
	// cobra prints the error
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
