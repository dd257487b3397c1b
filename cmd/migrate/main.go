// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go
package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/joho/godotenv"

	"shopkeeper/internal/config"
	"shopkeeper/internal/db"
)

func main() {
	// .env is optional; environment variables are the canonical source
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	var (
		host     = flag.String("host", config.GetEnv("DB_HOST", "localhost"), "Database host")
		port     = flag.String("port", config.GetEnv("DB_PORT", "5432"), "Database port")
		user     = flag.String("user", config.GetEnv("DB_USER", "postgres"), "Database user")
		password = flag.String("password", config.GetEnv("DB_PASSWORD", "postgres"), "Database password")
		name     = flag.String("name", config.GetEnv("DB_NAME", "shopkeeper"), "Database name")
		ssl      = flag.Bool("ssl", config.GetEnv("DB_SSL", "false") == "true", "Use SSL for the database connection")
	)
	flag.Parse()

	portNum, err := strconv.Atoi(*port)
	if err != nil {
		log.Fatalf("Invalid port %q: %v", *port, err)
	}

	// db.New runs the schema migrations as part of connecting
	if _, err := db.New(db.Options{
		Host:     *host,
		User:     *user,
		Password: *password,
		DBName:   *name,
		Port:     portNum,
		SSL:      *ssl,
	}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
