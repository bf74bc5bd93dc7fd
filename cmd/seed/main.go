// Seeds the database with the default admin and a demo voter, and can
// reset the admin password when it has been lost.
//
//	go run ./cmd/seed
//	go run ./cmd/seed -reset-admin-password newpassword
package main

import (
	"flag"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Sharmake123/som-election-platform/config"
	"github.com/Sharmake123/som-election-platform/models"
)

var seedUsers = []models.User{
	{
		Username:   "admin",
		Email:      "admin@example.com",
		Mobile:     "1234567890",
		NationalID: "ADMIN001",
		DOB:        "1990-01-01",
		Photo:      models.DefaultPhoto,
		Role:       models.RoleAdmin,
		Status:     models.StatusVerified,
	},
	{
		Username:   "voter",
		Email:      "voter@example.com",
		Mobile:     "0987654321",
		NationalID: "VOTER001",
		DOB:        "1995-01-01",
		Photo:      models.DefaultPhoto,
		Role:       models.RoleVoter,
		Status:     models.StatusVerified,
	},
}

const seedPassword = "password123"

func main() {
	resetPassword := flag.String("reset-admin-password", "", "reset the admin user's password and exit")
	flag.Parse()

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

	if *resetPassword != "" {
		resetAdminPassword(*resetPassword)
		return
	}

	seed()
}

func seed() {
	created := 0
	for i := range seedUsers {
		user := seedUsers[i]

		var existing models.User
		if err := config.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			color.Yellow("%s already exists, skipping", user.Username)
			continue
		}

		hashed, err := models.HashPassword(seedPassword)
		if err != nil {
			log.Fatalf("Error hashing password: %v", err)
		}
		user.Password = hashed

		if err := config.DB.Create(&user).Error; err != nil {
			log.Fatalf("Error creating %s: %v", user.Username, err)
		}
		created++
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Username", "Email", "Role", "Status"})
	for _, user := range seedUsers {
		table.Append([]string{user.Username, user.Email, string(user.Role), string(user.Status)})
	}
	table.Render()

	color.Green("Database seeded successfully (%d user(s) created)", created)
}

func resetAdminPassword(newPassword string) {
	var admin models.User
	err := config.DB.Where("role = ?", models.RoleAdmin).First(&admin).Error
	if err != nil {
		color.Red("Admin user not found")
		os.Exit(1)
	}

	hashed, err := models.HashPassword(newPassword)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}
	admin.Password = hashed

	if err := config.DB.Save(&admin).Error; err != nil {
		log.Fatalf("Error saving admin user: %v", err)
	}

	color.Green("Password for admin user %q has been reset successfully", admin.Username)
}
