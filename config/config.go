package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global database instance
var DB *gorm.DB
var JWTSecret []byte

// UploadsDir is where candidate and user photos are stored and served from.
var UploadsDir = "uploads"

func LoadConfig() {
	// Load .env file
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("No .env file found, relying on environment")
	}

	// Set JWT secret key from environment variable
	JWTSecret = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTSecret) == 0 {
		log.Fatalf("JWT secret key not set")
	}

	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		UploadsDir = dir
	}
	if err := os.MkdirAll(UploadsDir, 0o755); err != nil {
		log.Fatalf("Error creating uploads directory: %v", err)
	}
}

func ConnectDatabase() {
	// Load DB config from environment variables
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	var errDB error
	// TranslateError maps driver unique-constraint violations to
	// gorm.ErrDuplicatedKey so handlers can report domain conflicts.
	DB, errDB = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if errDB != nil {
		log.Fatalf("Error connecting to database: %v", errDB)
	}

	log.Println("Database connected successfully")
}
