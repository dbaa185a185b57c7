package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/navshell/config"
)

func main() {
	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	// go:generate runs from config/, the embedded copy lives in schema/.
	outputDir := filepath.Join("..", "schema")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	outputPath := filepath.Join(outputDir, "navshell.schema.json")
	if err := os.WriteFile(outputPath, append(schemaBytes, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated navshell schema at %s", outputPath)
}
