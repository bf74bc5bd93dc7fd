// main.go
package main

import (
	"log"
	"os"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
	"github.com/Sharmake123/som-election-platform/routes"
	"github.com/Sharmake123/som-election-platform/storage"
)

func main() {
	config.LoadConfig()
	config.ConnectDatabase()

	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Election{},
		&models.Candidate{},
		&models.Vote{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	log.Println("Database migrated successfully")

	storage.Photos = &storage.DiskStore{Dir: config.UploadsDir}

	router := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
