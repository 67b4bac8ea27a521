package database

import (
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedDemoAccounts(); err != nil {
		return fmt.Errorf("failed to seed demo accounts: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	// Hash password
	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleAdmin,
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedDemoAccounts creates one company and one university account with
// profiles so a fresh install has both sides of a collaboration to play
// with. Enabled only when SEED_DEMO_DATA=true.
func (s *Seeder) SeedDemoAccounts() error {
	if os.Getenv("SEED_DEMO_DATA") != "true" {
		log.Println("⏭️  SEED_DEMO_DATA not set, skipping demo accounts...")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.CompanyProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️  Demo accounts already exist, skipping...")
		return nil
	}

	passwordHash, err := auth.HashPassword("changeme123")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	companyUser := &model.User{
		Email:        "hr@acme.example.com",
		PasswordHash: passwordHash,
		Name:         "Acme HR",
		Role:         model.RoleCompany,
	}
	if err := s.db.Create(companyUser).Error; err != nil {
		return err
	}
	companyProfile := &model.CompanyProfile{
		UserID:       companyUser.ID,
		Name:         "Acme Technologies",
		Industry:     "Software",
		Location:     "Bengaluru, Karnataka",
		ContactEmail: companyUser.Email,
	}
	if err := s.db.Create(companyProfile).Error; err != nil {
		return err
	}

	universityUser := &model.User{
		Email:        "placements@aktu.example.com",
		PasswordHash: passwordHash,
		Name:         "AKTU Placement Cell",
		Role:         model.RoleUniversity,
	}
	if err := s.db.Create(universityUser).Error; err != nil {
		return err
	}
	universityProfile := &model.UniversityProfile{
		UserID:       universityUser.ID,
		Name:         "Dr. A.P.J. Abdul Kalam Technical University",
		Code:         "AKTU",
		Location:     "Lucknow, Uttar Pradesh",
		ContactEmail: universityUser.Email,
	}
	if err := s.db.Create(universityProfile).Error; err != nil {
		return err
	}

	log.Println("✅ Created demo company and university accounts (password: changeme123)")
	return nil
}

// RunSeeds is the entry point used by cmd/seed
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
