package main

import (
	"os"

	"github.com/somnisoft/crond/internal/cmd/crontab"
)

func main() {
	crontab.SetOutput(os.Stdout, os.Stderr)
	if err := crontab.Execute(); err != nil {
		os.Exit(1)
	}
}
