package main

import (
	"log"

	"github.com/jacobduba/sd18-isu/cmd/codesearch/commands"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, environment variables still apply
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
