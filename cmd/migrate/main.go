// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go                 # Migrate the schema
// go run cmd/migrate/main.go -host db:5433   # Override the target host
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/internal/db"
)

func main() {
	// Load .env file when present
	_ = godotenv.Load()

	var (
		host     = flag.String("host", config.GetEnv("DB_HOST", db.DefaultHost), "Database host")
		port     = flag.Int("port", config.GetEnvInt("DB_PORT", db.DefaultPort), "Database port")
		user     = flag.String("user", config.GetEnv("DB_USER", db.DefaultUser), "Database user")
		password = flag.String("password", config.GetEnv("DB_PASSWORD", db.DefaultPassword), "Database password")
		dbName   = flag.String("db", config.GetEnv("DB_NAME", db.DefaultDBName), "Database name")
	)
	flag.Parse()

	// db.New runs the schema migration as part of connecting
	if _, err := db.New(db.Options{
		Host:     *host,
		User:     *user,
		Password: *password,
		DBName:   *dbName,
		Port:     *port,
	}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}
