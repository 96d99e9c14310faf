package config

import (
	"log"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedOwner(); err != nil {
		log.Printf("⚠️ Owner seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedOwner seeds a default owner account for development.
// In production, register the owner through the API instead.
func (s *Seeder) seedOwner() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleOwner).Count(&count)
	if count > 0 {
		return nil // Owner already exists
	}

	hashedPassword, err := password.Hash("owner123")
	if err != nil {
		return err
	}

	owner := &models.User{
		Name:     "Default Owner",
		Email:    "owner@staytrack.local",
		Password: hashedPassword,
		Role:     models.RoleOwner,
		IsActive: true,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		profile := &models.OwnerProfile{UserID: owner.ID}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		log.Printf("✅ Owner account created: %s", owner.Email)
		return nil
	})
}
