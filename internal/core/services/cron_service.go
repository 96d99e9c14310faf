package services

import (
	"context"
	"log"

	"staytrack/internal/adapters/persistence/models"
	"staytrack/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	db        *gorm.DB
	tokenRepo repositories.RefreshTokenRepository
	cron      *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		db:        db,
		tokenRepo: repositories.NewRefreshTokenRepository(db),
		cron:      cron.New(),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Nightly maintenance at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", s.runMaintenance); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("⏰ Cron scheduler started (maintenance daily at 02:00)")
	return nil
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("⏰ Cron scheduler stopped")
}

func (s *CronService) runMaintenance() {
	ctx := context.Background()

	if err := s.PurgeStaleTokens(ctx); err != nil {
		log.Printf("⚠️ Token purge failed: %v", err)
	}
	if err := s.RecomputeOwnerRollups(ctx); err != nil {
		log.Printf("⚠️ Owner rollup recompute failed: %v", err)
	}
}

// PurgeStaleTokens deletes expired and revoked refresh tokens
func (s *CronService) PurgeStaleTokens(ctx context.Context) error {
	purged, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	if purged > 0 {
		log.Printf("🧹 Purged %d stale refresh tokens", purged)
	}
	return nil
}

// RecomputeOwnerRollups rebuilds each owner profile's counters from
// the live tables. Covers drift from crashed requests or manual edits.
func (s *CronService) RecomputeOwnerRollups(ctx context.Context) error {
	var owners []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleOwner).
		Find(&owners).Error; err != nil {
		return err
	}

	for _, owner := range owners {
		var roomCount int64
		if err := s.db.WithContext(ctx).
			Model(&models.Room{}).
			Where("owner_id = ?", owner.ID).
			Count(&roomCount).Error; err != nil {
			return err
		}

		var adminCount int64
		if err := s.db.WithContext(ctx).
			Model(&models.User{}).
			Where("role = ? AND owner_id = ?", models.RoleAdmin, owner.ID).
			Count(&adminCount).Error; err != nil {
			return err
		}

		// Revenue recorded by this owner or any of their admins
		var revenue float64
		row := s.db.WithContext(ctx).
			Model(&models.Payment{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("status IN ?", []string{models.PaymentCompleted, "paid"}).
			Where("admin_id = ? OR admin_id IN (?)",
				owner.ID,
				s.db.Model(&models.User{}).Select("id").Where("owner_id = ?", owner.ID),
			).
			Row()
		if err := row.Scan(&revenue); err != nil {
			return err
		}

		if err := s.db.WithContext(ctx).
			Model(&models.OwnerProfile{}).
			Where("user_id = ?", owner.ID).
			Updates(map[string]interface{}{
				"admin_count":   adminCount,
				"room_count":    roomCount,
				"total_revenue": revenue,
			}).Error; err != nil {
			return err
		}
	}

	log.Printf("📊 Owner rollups recomputed for %d owner(s)", len(owners))
	return nil
}
