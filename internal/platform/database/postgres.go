package database

import (
	"database/sql"
	"log"

	"codequest/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

// Connect opens the shared pool using the pool limits from config.
func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(config.AppConfig.DBMaxOpenConns)
	DB.SetMaxIdleConns(config.AppConfig.DBMaxIdleConns)
	DB.SetConnMaxLifetime(config.AppConfig.DBConnMaxLifetime)

	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	log.Printf("Connected to PostgreSQL at %s:%s/%s", config.AppConfig.DBHost, config.AppConfig.DBPort, config.AppConfig.DBName)
}

func Close() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed")
	}
}
