package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/crewline/crewline/cmd/cli/commands"
)

func main() {
	// Missing .env is fine; flags and env vars still apply.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
