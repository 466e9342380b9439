package services

import (
	"context"
	"log"
	"time"

	"campushub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	db               *gorm.DB
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		db:               db,
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		cron:             cron.New(),
	}
}

// Start schedules and launches all jobs
func (s *CronService) Start() {
	// Purge expired refresh tokens nightly at 02:30
	s.cron.AddFunc("30 2 * * *", s.purgeExpiredTokens)

	// Log the day's event summary at 08:30
	s.cron.AddFunc("30 8 * * *", s.logTodayEvents)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Token purge error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🗑️ Purged %d expired refresh tokens", deleted)
	}
}

func (s *CronService) logTodayEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 1)

	var count int64
	s.db.WithContext(ctx).Table("events").
		Where("date >= ? AND date < ? AND deleted_at IS NULL", start, end).
		Count(&count)

	log.Printf("📅 Events today: %d", count)
}
