package main

import (
	"fmt"
	"log"
	"os"

	"liga-api/config"
	"liga-api/fixtures"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	fixtureManager := fixtures.NewFixtures(config.DB)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	switch command {
	case "generate":
		if err := fixtureManager.GenerateTestData(); err != nil {
			log.Fatal("Fixtures generation failed:", err)
		}
	case "clean":
		if err := fixtureManager.CleanTestData(); err != nil {
			log.Fatal("Fixtures cleanup failed:", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate - Seed a demo league with matches and ballots")
	fmt.Println("  go run ./cmd/fixtures clean    - Remove all seeded data")
}
