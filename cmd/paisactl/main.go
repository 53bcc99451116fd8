package main

import (
	"github.com/joho/godotenv"

	"paisa/internal/cli"
)

func main() {
	// Local development convenience; the CLI's own config still wins.
	_ = godotenv.Load()

	cli.Execute()
}
