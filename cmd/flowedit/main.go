// Package main provides a CLI to check workflow files and manage the autosave record.
package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// settings in .env are optional, the environment and flags still apply
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}
