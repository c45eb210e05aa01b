package main

import (
	"os"

	"github.com/decisionmotor/maturity/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
