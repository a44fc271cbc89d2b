package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agenda/internal/config"
	"agenda/internal/db"
	"agenda/internal/model"
	"agenda/internal/repository"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "password"
)

var demoContacts = []model.Contact{
	{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", Number: 5551230001},
	{FirstName: "Bob", LastName: "Smith", Email: "bob@example.com", Number: 5551230002},
	{FirstName: "Carol", LastName: "Diaz", Email: "carol@example.com", Number: 5551230003},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	contacts := repository.NewContactRepository(gormDB)

	user, err := users.FindByEmail(ctx, demoEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up demo user: %v", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}

		user = &model.User{Username: demoUsername, Email: demoEmail, PasswordHash: string(hash)}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (%s)", demoUsername, demoEmail)
	} else {
		log.Printf("Demo user already exists, reusing id %d", user.ID)
	}

	existing, err := contacts.CountByOwner(ctx, user.ID, "")
	if err != nil {
		log.Fatalf("Failed to count demo contacts: %v", err)
	}
	if existing > 0 {
		log.Printf("Demo user already has %d contacts, nothing to seed", existing)
		return
	}

	for _, c := range demoContacts {
		c.UserID = user.ID
		if err := contacts.Create(ctx, &c); err != nil {
			log.Fatalf("Failed to seed contact %s: %v", c.FirstName, err)
		}
	}
	log.Printf("Seeded %d contacts for %s", len(demoContacts), demoEmail)
}
