package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Applies every *up.sql migration in order against DATABASE_URL.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	entries, err := os.ReadDir(basePath)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(basePath, entry.Name()))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute migration %s: %v", entry.Name(), err)
		}

		fmt.Printf("applied %s\n", entry.Name())
	}
}
