package main

import (
	"os"

	"github.com/Domenick1991/airquery/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
