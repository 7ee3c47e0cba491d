package main

import (
	"os"

	"github.com/campusops/ucms-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
