package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// User mirrors the application's user table. The script talks to the database
// directly so an admin can be created without going through the registration
// path, which never sets is_admin.
type User struct {
	ID                  uint   `gorm:"primaryKey"`
	Email               string `gorm:"uniqueIndex;not null"`
	PasswordHash        string `gorm:"not null"`
	IsAdmin             bool   `gorm:"not null;default:false"`
	ResetToken          string `gorm:"index"`
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func main() {
	// Parse command line flags
	email := flag.String("email", "admin@cursos.com", "Email for the admin account")
	password := flag.String("password", "admin123", "Password for the admin account")
	dbPath := flag.String("db", "cursos.sqlite", "Path to the SQLite database file")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Check if the account already exists
	var existing User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		if existing.IsAdmin {
			fmt.Printf("Admin account already exists: %s (ID: %d)\n", existing.Email, existing.ID)
			return
		}
		log.Fatalf("Account %s exists but is not an admin; refusing to promote it", *email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := User{
		Email:        *email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	fmt.Printf("✓ Admin account created!\n")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("User ID: %d\n", admin.ID)
	fmt.Println("\nLog in with:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/auth/login \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"email\":\"%s\",\"password\":\"<password>\"}'\n", admin.Email)
}
