package main

import (
	"os"

	"github.com/somnisoft/crond/internal/cmd/crond"
)

func main() {
	crond.SetOutput(os.Stdout, os.Stderr)
	if err := crond.Execute(); err != nil {
		os.Exit(1)
	}
}
