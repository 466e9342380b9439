package config

import (
	"fmt"
	"log"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Super admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin creates the bootstrap SUPER_ADMIN account from env credentials.
// Runs only when no super admin exists yet.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return nil // Super admin already exists
	}

	if s.cfg.Bootstrap.AdminEmail == "" || s.cfg.Bootstrap.AdminPassword == "" {
		log.Println("⚠️ Skipping super admin seed: BOOTSTRAP_ADMIN_EMAIL / BOOTSTRAP_ADMIN_PASSWORD not set")
		return nil
	}

	if !password.Validate(s.cfg.Bootstrap.AdminPassword) {
		return fmt.Errorf("bootstrap admin password must be at least %d characters", password.MinLength)
	}

	hashedPassword, err := password.Hash(s.cfg.Bootstrap.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.cfg.Bootstrap.AdminName,
		Email:    s.cfg.Bootstrap.AdminEmail,
		Password: hashedPassword,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", admin.Email)
	return nil
}
